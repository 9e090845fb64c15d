package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/models"
	"github.com/barangay-portal/api/internal/observability"
	"github.com/barangay-portal/api/internal/utils"
)

var hotlineSearchFields = []string{"name", "description", "phone_number", "address", "tags"}

const (
	hotlineStatsCacheKey     = "stats:hotlines"
	hotlineEmergencyCacheKey = "feed:hotlines:emergency"
)

// BulkUpdateResult reports how many records a bulk write touched, so the
// caller can tell partial matches from full ones
type BulkUpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// HotlineService handles hotline directory operations
type HotlineService struct {
	logger *logging.SafeLogger
}

// NewHotlineService creates a new hotline service
func NewHotlineService(logger *logging.SafeLogger) *HotlineService {
	return &HotlineService{logger: logger}
}

// List returns a page of hotlines matching the query
func (s *HotlineService) List(ctx context.Context, q ListQuery) (*models.HotlineListResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.HotlineCollection)
	filter := q.BuildFilter(hotlineSearchFields)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count hotlines: %w", err)
	}

	cursor, err := collection.Find(ctx, filter, q.FindOptions("name"))
	if err != nil {
		return nil, fmt.Errorf("failed to list hotlines: %w", err)
	}
	defer cursor.Close(ctx)

	data := []models.Hotline{}
	for cursor.Next(ctx) {
		var hotline models.Hotline
		if err := cursor.Decode(&hotline); err != nil {
			s.logger.Warn("failed to decode hotline document", zap.Error(err))
			continue
		}
		data = append(data, hotline)
	}

	return &models.HotlineListResponse{
		Success:    true,
		Data:       data,
		Pagination: models.NewPaginationInfo(q.Page, q.PerPage, total),
	}, nil
}

// Emergency returns the active, verified hotlines in the emergency
// categories, cached for the citizen-facing directory
func (s *HotlineService) Emergency(ctx context.Context) ([]models.Hotline, error) {
	cached := config.Redis.Get(ctx, hotlineEmergencyCacheKey)
	if val, err := cached.Result(); err == nil && val != "" {
		var hotlines []models.Hotline
		if err := json.Unmarshal([]byte(val), &hotlines); err == nil {
			observability.CacheHits.WithLabelValues("hotline_emergency").Inc()
			return hotlines, nil
		}
	}

	filter := bson.M{
		"is_active":   true,
		"is_verified": true,
		"category":    bson.M{"$in": models.EmergencyHotlineCategories},
	}

	collection := config.MongoDB.Collection(config.AppConfig.HotlineCollection)
	cursor, err := collection.Find(ctx, filter, NewListQuery(1, 100).FindOptions("category"))
	if err != nil {
		return nil, fmt.Errorf("failed to load emergency hotlines: %w", err)
	}
	defer cursor.Close(ctx)

	hotlines := []models.Hotline{}
	for cursor.Next(ctx) {
		var hotline models.Hotline
		if err := cursor.Decode(&hotline); err != nil {
			continue
		}
		hotlines = append(hotlines, hotline)
	}

	if payload, err := json.Marshal(hotlines); err == nil {
		config.Redis.Set(ctx, hotlineEmergencyCacheKey, string(payload), config.AppConfig.RedisTTL)
	}

	return hotlines, nil
}

// Get retrieves a hotline by ID
func (s *HotlineService) Get(ctx context.Context, id string) (*models.Hotline, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.HotlineCollection)

	var hotline models.Hotline
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&hotline)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrHotlineNotFound
		}
		return nil, fmt.Errorf("failed to get hotline: %w", err)
	}

	return &hotline, nil
}

// Create inserts a new hotline
func (s *HotlineService) Create(ctx context.Context, req models.HotlineRequest) (*models.Hotline, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isVerified := false
	if req.IsVerified != nil {
		isVerified = *req.IsVerified
	}

	hotline := &models.Hotline{
		Name:            req.Name,
		Category:        req.Category,
		PhoneNumber:     req.PhoneNumber,
		AlternateNumber: req.AlternateNumber,
		Description:     req.Description,
		Availability:    req.Availability,
		ResponseTime:    req.ResponseTime,
		Address:         req.Address,
		Coordinates:     req.Coordinates,
		IsActive:        isActive,
		IsVerified:      isVerified,
		Tags:            req.Tags,
	}
	hotline.BeforeCreate()

	collection := config.MongoDB.Collection(config.AppConfig.HotlineCollection)
	result, err := collection.InsertOne(ctx, hotline)
	if err != nil {
		return nil, fmt.Errorf("failed to create hotline: %w", err)
	}

	hotline.ID = result.InsertedID.(primitive.ObjectID)
	s.invalidateCaches(ctx)

	return hotline, nil
}

// Update replaces the editable fields of a hotline
func (s *HotlineService) Update(ctx context.Context, id string, req models.HotlineRequest) (*models.Hotline, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	set := bson.M{
		"name":             req.Name,
		"category":         req.Category,
		"phone_number":     req.PhoneNumber,
		"alternate_number": req.AlternateNumber,
		"description":      req.Description,
		"availability":     req.Availability,
		"response_time":    req.ResponseTime,
		"address":          req.Address,
		"coordinates":      req.Coordinates,
		"tags":             req.Tags,
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}
	if req.IsVerified != nil {
		set["is_verified"] = *req.IsVerified
	}

	if req.Version != nil {
		_, err := utils.UpdateWithOptimisticLock(ctx,
			config.AppConfig.HotlineCollection,
			bson.M{"_id": objectID},
			bson.M{"$set": set},
			*req.Version)
		if err != nil {
			if _, ok := err.(utils.OptimisticLockError); ok {
				return nil, models.ErrVersionConflict
			}
			return nil, err
		}
	} else {
		set["updated_at"] = time.Now()
		update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}
		result, err := config.MongoDB.Collection(config.AppConfig.HotlineCollection).
			UpdateOne(ctx, bson.M{"_id": objectID}, update)
		if err != nil {
			return nil, fmt.Errorf("failed to update hotline: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, models.ErrHotlineNotFound
		}
	}

	s.invalidateCaches(ctx)
	return s.Get(ctx, id)
}

// Delete removes a hotline
func (s *HotlineService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.HotlineCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete hotline: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrHotlineNotFound
	}

	s.invalidateCaches(ctx)
	return nil
}

// BulkUpdateVerification toggles the verification flag on a set of hotlines
func (s *HotlineService) BulkUpdateVerification(ctx context.Context, ids []string, isVerified bool) (*BulkUpdateResult, error) {
	if len(ids) == 0 {
		return nil, models.ErrEmptyIDList
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, models.ErrInvalidID
		}
		objectIDs = append(objectIDs, objectID)
	}

	collection := config.MongoDB.Collection(config.AppConfig.HotlineCollection)
	result, err := collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": objectIDs}},
		bson.M{
			"$set": bson.M{"is_verified": isVerified, "updated_at": time.Now()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk update verification: %w", err)
	}

	if result.MatchedCount != int64(len(ids)) {
		s.logger.Warn("bulk verification matched fewer hotlines than requested",
			zap.Int64("matched", result.MatchedCount),
			zap.Int("requested", len(ids)))
	}

	s.invalidateCaches(ctx)
	return &BulkUpdateResult{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

// Stats returns the hotline statistics overview, cached in Redis
func (s *HotlineService) Stats(ctx context.Context) (*models.HotlineStats, error) {
	cached := config.Redis.Get(ctx, hotlineStatsCacheKey)
	if val, err := cached.Result(); err == nil && val != "" {
		var stats models.HotlineStats
		if err := json.Unmarshal([]byte(val), &stats); err == nil {
			observability.CacheHits.WithLabelValues("hotline_stats").Inc()
			return &stats, nil
		}
	}

	collection := config.MongoDB.Collection(config.AppConfig.HotlineCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count hotlines: %w", err)
	}
	active, err := collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count active hotlines: %w", err)
	}
	verified, err := collection.CountDocuments(ctx, bson.M{"is_verified": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count verified hotlines: %w", err)
	}

	stats := &models.HotlineStats{
		Total:      total,
		Active:     active,
		Verified:   verified,
		ByCategory: map[string]int64{},
	}

	for _, category := range models.HotlineCategories {
		count, err := collection.CountDocuments(ctx, bson.M{"category": category})
		if err != nil {
			return nil, fmt.Errorf("failed to count hotlines by category: %w", err)
		}
		stats.ByCategory[category] = count
	}

	if payload, err := json.Marshal(stats); err == nil {
		config.Redis.Set(ctx, hotlineStatsCacheKey, string(payload), config.AppConfig.RedisTTL)
	}

	return stats, nil
}

func (s *HotlineService) invalidateCaches(ctx context.Context) {
	pipe := config.Redis.Pipeline()
	pipe.Del(ctx, hotlineStatsCacheKey)
	pipe.Del(ctx, hotlineEmergencyCacheKey)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("failed to invalidate hotline caches", zap.Error(err))
	}
}
