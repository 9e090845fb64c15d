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

// residentSearchFields are the fields covered by free-text search
var residentSearchFields = []string{"first_name", "middle_name", "last_name", "address", "phone_number", "occupation"}

const residentStatsCacheKey = "stats:residents"

// ResidentService handles resident record operations
type ResidentService struct {
	logger *logging.SafeLogger
}

// NewResidentService creates a new resident service
func NewResidentService(logger *logging.SafeLogger) *ResidentService {
	return &ResidentService{logger: logger}
}

// ResidentStats is the resident statistics overview
type ResidentStats struct {
	Total    int64            `json:"total"`
	Voters   int64            `json:"voters"`
	ByGender map[string]int64 `json:"by_gender"`
}

// List returns a page of residents matching the query, with ages computed
// against the current clock
func (s *ResidentService) List(ctx context.Context, q ListQuery) (*models.ResidentListResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.ResidentCollection)
	filter := q.BuildFilter(residentSearchFields)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count residents: %w", err)
	}

	cursor, err := collection.Find(ctx, filter, q.FindOptions("last_name"))
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	defer cursor.Close(ctx)

	now := time.Now()
	data := []models.ResidentResponse{}
	for cursor.Next(ctx) {
		var resident models.Resident
		if err := cursor.Decode(&resident); err != nil {
			s.logger.Warn("failed to decode resident document", zap.Error(err))
			continue
		}
		data = append(data, resident.ToResponse(now))
	}

	return &models.ResidentListResponse{
		Success:    true,
		Data:       data,
		Pagination: models.NewPaginationInfo(q.Page, q.PerPage, total),
	}, nil
}

// Get retrieves a resident by ID
func (s *ResidentService) Get(ctx context.Context, id string) (*models.Resident, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.ResidentCollection)

	var resident models.Resident
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&resident)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	return &resident, nil
}

// Create inserts a new resident record
func (s *ResidentService) Create(ctx context.Context, req models.ResidentRequest) (*models.Resident, error) {
	phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	resident := &models.Resident{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Email:         req.Email,
		PhoneNumber:   phone,
		Address:       req.Address,
		Gender:        req.Gender,
		Birthdate:     req.Birthdate,
		CivilStatus:   req.CivilStatus,
		Occupation:    req.Occupation,
		HouseholdRole: req.HouseholdRole,
		VoterStatus:   req.VoterStatus,
	}
	resident.BeforeCreate()

	collection := config.MongoDB.Collection(config.AppConfig.ResidentCollection)
	result, err := collection.InsertOne(ctx, resident)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert", "error").Inc()
		return nil, fmt.Errorf("failed to create resident: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("insert", "success").Inc()

	resident.ID = result.InsertedID.(primitive.ObjectID)
	s.invalidateStatsCache(ctx)

	return resident, nil
}

// Update replaces the editable fields of a resident record. When the
// request carries a version, the write is rejected on a stale version;
// without one the original last-write-wins behavior is kept.
func (s *ResidentService) Update(ctx context.Context, id string, req models.ResidentRequest) (*models.Resident, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	householdRole := req.HouseholdRole
	if householdRole == "" {
		householdRole = models.DefaultHouseholdRole
	}

	set := bson.M{
		"first_name":     req.FirstName,
		"middle_name":    req.MiddleName,
		"last_name":      req.LastName,
		"email":          req.Email,
		"phone_number":   phone,
		"address":        req.Address,
		"gender":         req.Gender,
		"birthdate":      req.Birthdate,
		"civil_status":   req.CivilStatus,
		"occupation":     req.Occupation,
		"household_role": householdRole,
		"voter_status":   req.VoterStatus,
	}

	if req.Version != nil {
		_, err := utils.UpdateWithOptimisticLock(ctx,
			config.AppConfig.ResidentCollection,
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
		result, err := config.MongoDB.Collection(config.AppConfig.ResidentCollection).
			UpdateOne(ctx, bson.M{"_id": objectID}, update)
		if err != nil {
			return nil, fmt.Errorf("failed to update resident: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, models.ErrResidentNotFound
		}
	}

	s.invalidateStatsCache(ctx)
	return s.Get(ctx, id)
}

// Delete removes a resident record
func (s *ResidentService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.ResidentCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete resident: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrResidentNotFound
	}

	s.invalidateStatsCache(ctx)
	return nil
}

// Stats returns the resident statistics overview, cached in Redis
func (s *ResidentService) Stats(ctx context.Context) (*ResidentStats, error) {
	cached := config.Redis.Get(ctx, residentStatsCacheKey)
	if val, err := cached.Result(); err == nil && val != "" {
		var stats ResidentStats
		if err := json.Unmarshal([]byte(val), &stats); err == nil {
			observability.CacheHits.WithLabelValues("resident_stats").Inc()
			return &stats, nil
		}
	}

	collection := config.MongoDB.Collection(config.AppConfig.ResidentCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count residents: %w", err)
	}

	voters, err := collection.CountDocuments(ctx, bson.M{"voter_status": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count voters: %w", err)
	}

	stats := &ResidentStats{
		Total:    total,
		Voters:   voters,
		ByGender: map[string]int64{},
	}

	for _, gender := range models.Genders {
		count, err := collection.CountDocuments(ctx, bson.M{"gender": gender})
		if err != nil {
			return nil, fmt.Errorf("failed to count residents by gender: %w", err)
		}
		stats.ByGender[gender] = count
	}

	if payload, err := json.Marshal(stats); err == nil {
		config.Redis.Set(ctx, residentStatsCacheKey, string(payload), config.AppConfig.RedisTTL)
	}

	return stats, nil
}

func (s *ResidentService) invalidateStatsCache(ctx context.Context) {
	if err := config.Redis.Del(ctx, residentStatsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate resident stats cache", zap.Error(err))
	}
}
