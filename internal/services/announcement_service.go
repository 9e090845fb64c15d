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

var announcementSearchFields = []string{"title", "content", "source"}

const announcementFeedCacheKey = "feed:announcements"

// AnnouncementService handles announcement operations
type AnnouncementService struct {
	logger *logging.SafeLogger
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(logger *logging.SafeLogger) *AnnouncementService {
	return &AnnouncementService{logger: logger}
}

// List returns a page of announcements matching the query
func (s *AnnouncementService) List(ctx context.Context, q ListQuery) (*models.AnnouncementListResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.AnnouncementCollection)
	filter := q.BuildFilter(announcementSearchFields)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count announcements: %w", err)
	}

	cursor, err := collection.Find(ctx, filter, q.FindOptions("date"))
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer cursor.Close(ctx)

	data := []models.Announcement{}
	for cursor.Next(ctx) {
		var announcement models.Announcement
		if err := cursor.Decode(&announcement); err != nil {
			s.logger.Warn("failed to decode announcement document", zap.Error(err))
			continue
		}
		data = append(data, announcement)
	}

	return &models.AnnouncementListResponse{
		Success:    true,
		Data:       data,
		Pagination: models.NewPaginationInfo(q.Page, q.PerPage, total),
	}, nil
}

// PublicFeed returns the active announcements for the citizen-facing feed,
// optionally narrowed to one category. The unfiltered feed is cached.
func (s *AnnouncementService) PublicFeed(ctx context.Context, category string) ([]models.Announcement, error) {
	useCache := category == "" || category == FilterAll

	if useCache {
		cached := config.Redis.Get(ctx, announcementFeedCacheKey)
		if val, err := cached.Result(); err == nil && val != "" {
			var feed []models.Announcement
			if err := json.Unmarshal([]byte(val), &feed); err == nil {
				observability.CacheHits.WithLabelValues("announcement_feed").Inc()
				return feed, nil
			}
		}
	}

	filter := bson.M{"is_active": true}
	if !useCache {
		filter["category"] = category
	}

	collection := config.MongoDB.Collection(config.AppConfig.AnnouncementCollection)
	cursor, err := collection.Find(ctx, filter,
		NewListQuery(1, 100).FindOptions("date"))
	if err != nil {
		return nil, fmt.Errorf("failed to load announcement feed: %w", err)
	}
	defer cursor.Close(ctx)

	feed := []models.Announcement{}
	for cursor.Next(ctx) {
		var announcement models.Announcement
		if err := cursor.Decode(&announcement); err != nil {
			continue
		}
		feed = append(feed, announcement)
	}

	if useCache {
		if payload, err := json.Marshal(feed); err == nil {
			config.Redis.Set(ctx, announcementFeedCacheKey, string(payload), config.AppConfig.RedisTTL)
		}
	}

	return feed, nil
}

// Get retrieves an announcement by ID
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.AnnouncementCollection)

	var announcement models.Announcement
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&announcement)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	return &announcement, nil
}

// Create inserts a new announcement
func (s *AnnouncementService) Create(ctx context.Context, req models.AnnouncementRequest) (*models.Announcement, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	announcement := &models.Announcement{
		Title:    req.Title,
		Category: req.Category,
		Date:     req.Date,
		Content:  req.Content,
		Source:   req.Source,
		IsActive: isActive,
	}
	announcement.BeforeCreate()

	collection := config.MongoDB.Collection(config.AppConfig.AnnouncementCollection)
	result, err := collection.InsertOne(ctx, announcement)
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	announcement.ID = result.InsertedID.(primitive.ObjectID)
	s.invalidateFeedCache(ctx)

	return announcement, nil
}

// Update replaces the editable fields of an announcement
func (s *AnnouncementService) Update(ctx context.Context, id string, req models.AnnouncementRequest) (*models.Announcement, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	set := bson.M{
		"title":    req.Title,
		"category": req.Category,
		"date":     req.Date,
		"content":  req.Content,
		"source":   req.Source,
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}

	if req.Version != nil {
		_, err := utils.UpdateWithOptimisticLock(ctx,
			config.AppConfig.AnnouncementCollection,
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
		result, err := config.MongoDB.Collection(config.AppConfig.AnnouncementCollection).
			UpdateOne(ctx, bson.M{"_id": objectID}, update)
		if err != nil {
			return nil, fmt.Errorf("failed to update announcement: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, models.ErrAnnouncementNotFound
		}
	}

	s.invalidateFeedCache(ctx)
	return s.Get(ctx, id)
}

// Delete removes an announcement
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.AnnouncementCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrAnnouncementNotFound
	}

	s.invalidateFeedCache(ctx)
	return nil
}

func (s *AnnouncementService) invalidateFeedCache(ctx context.Context) {
	if err := config.Redis.Del(ctx, announcementFeedCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate announcement feed cache", zap.Error(err))
	}
}
