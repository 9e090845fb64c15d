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

var appointmentSearchFields = []string{"title", "venue", "description", "contact_info.name", "assigned_to"}

const appointmentStatsCacheKey = "stats:appointments"

// AppointmentService handles appointment operations
type AppointmentService struct {
	logger *logging.SafeLogger
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(logger *logging.SafeLogger) *AppointmentService {
	return &AppointmentService{logger: logger}
}

// List returns a page of appointments matching the query
func (s *AppointmentService) List(ctx context.Context, q ListQuery) (*models.AppointmentListResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.AppointmentCollection)
	filter := q.BuildFilter(appointmentSearchFields)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	cursor, err := collection.Find(ctx, filter, q.FindOptions("scheduled_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	data := []models.AppointmentResponse{}
	for cursor.Next(ctx) {
		var appointment models.Appointment
		if err := cursor.Decode(&appointment); err != nil {
			s.logger.Warn("failed to decode appointment document", zap.Error(err))
			continue
		}
		data = append(data, appointment.ToResponse())
	}

	return &models.AppointmentListResponse{
		Success:    true,
		Data:       data,
		Pagination: models.NewPaginationInfo(q.Page, q.PerPage, total),
	}, nil
}

// ListByContactEmail returns the appointments a citizen booked, soonest
// first. Contact data is inline on the appointment, so the citizen's email
// is the only join key available.
func (s *AppointmentService) ListByContactEmail(ctx context.Context, email string, q ListQuery) (*models.AppointmentListResponse, error) {
	q.Filters["contact_info.email"] = email
	return s.List(ctx, q)
}

// Upcoming returns appointments scheduled from now on that are still live
func (s *AppointmentService) Upcoming(ctx context.Context) ([]models.AppointmentResponse, error) {
	filter := bson.M{
		"scheduled_at": bson.M{"$gte": time.Now()},
		"status":       bson.M{"$nin": []string{"Cancelled", "Completed"}},
	}

	collection := config.MongoDB.Collection(config.AppConfig.AppointmentCollection)
	cursor, err := collection.Find(ctx, filter, NewListQuery(1, 100).FindOptions("scheduled_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming appointments: %w", err)
	}
	defer cursor.Close(ctx)

	data := []models.AppointmentResponse{}
	for cursor.Next(ctx) {
		var appointment models.Appointment
		if err := cursor.Decode(&appointment); err != nil {
			continue
		}
		data = append(data, appointment.ToResponse())
	}

	return data, nil
}

// Get retrieves an appointment by ID
func (s *AppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.AppointmentCollection)

	var appointment models.Appointment
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return &appointment, nil
}

// Create inserts a new appointment. Document-request appointments keep the
// stored status vocabulary; relabeling happens only on the way out.
func (s *AppointmentService) Create(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	appointment := &models.Appointment{
		Title:             req.Title,
		Type:              req.Type,
		ScheduledAt:       req.ScheduledAt,
		Venue:             req.Venue,
		Description:       req.Description,
		ContactInfo:       req.ContactInfo,
		IsDocumentRequest: req.IsDocumentRequest,
		Status:            req.Status,
	}
	appointment.BeforeCreate()

	collection := config.MongoDB.Collection(config.AppConfig.AppointmentCollection)
	result, err := collection.InsertOne(ctx, appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	appointment.ID = result.InsertedID.(primitive.ObjectID)
	s.invalidateStatsCache(ctx)

	return appointment, nil
}

// Update replaces the editable fields of an appointment
func (s *AppointmentService) Update(ctx context.Context, id string, req models.AppointmentRequest) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	set := bson.M{
		"title":               req.Title,
		"type":                req.Type,
		"scheduled_at":        req.ScheduledAt,
		"venue":               req.Venue,
		"description":         req.Description,
		"contact_info":        req.ContactInfo,
		"is_document_request": req.IsDocumentRequest,
	}
	if req.Status != "" {
		set["status"] = req.Status
	}

	if req.Version != nil {
		_, err := utils.UpdateWithOptimisticLock(ctx,
			config.AppConfig.AppointmentCollection,
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
		result, err := config.MongoDB.Collection(config.AppConfig.AppointmentCollection).
			UpdateOne(ctx, bson.M{"_id": objectID}, update)
		if err != nil {
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, models.ErrAppointmentNotFound
		}
	}

	if req.Status != "" {
		observability.StatusTransitions.WithLabelValues("appointment", req.Status).Inc()
	}
	s.invalidateStatsCache(ctx)
	return s.Get(ctx, id)
}

// Delete removes an appointment
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.AppointmentCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrAppointmentNotFound
	}

	s.invalidateStatsCache(ctx)
	return nil
}

// BulkUpdateStatus sets the status on a set of appointments, optionally
// assigning them to a handler
func (s *AppointmentService) BulkUpdateStatus(ctx context.Context, ids []string, status, assignedTo string) (*BulkUpdateResult, error) {
	if len(ids) == 0 {
		return nil, models.ErrEmptyIDList
	}
	if !models.IsValidAppointmentStatus(status) {
		return nil, models.ErrInvalidStatus
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, models.ErrInvalidID
		}
		objectIDs = append(objectIDs, objectID)
	}

	set := bson.M{"status": status, "updated_at": time.Now()}
	if assignedTo != "" {
		set["assigned_to"] = assignedTo
	}

	collection := config.MongoDB.Collection(config.AppConfig.AppointmentCollection)
	result, err := collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": objectIDs}},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk update status: %w", err)
	}

	if result.MatchedCount != int64(len(ids)) {
		s.logger.Warn("bulk status update matched fewer appointments than requested",
			zap.Int64("matched", result.MatchedCount),
			zap.Int("requested", len(ids)))
	}

	observability.StatusTransitions.WithLabelValues("appointment", status).Add(float64(result.ModifiedCount))
	s.invalidateStatsCache(ctx)
	return &BulkUpdateResult{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

// Stats returns the appointment statistics overview, cached in Redis
func (s *AppointmentService) Stats(ctx context.Context) (*models.AppointmentStats, error) {
	cached := config.Redis.Get(ctx, appointmentStatsCacheKey)
	if val, err := cached.Result(); err == nil && val != "" {
		var stats models.AppointmentStats
		if err := json.Unmarshal([]byte(val), &stats); err == nil {
			observability.CacheHits.WithLabelValues("appointment_stats").Inc()
			return &stats, nil
		}
	}

	collection := config.MongoDB.Collection(config.AppConfig.AppointmentCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	upcoming, err := collection.CountDocuments(ctx, bson.M{
		"scheduled_at": bson.M{"$gte": time.Now()},
		"status":       bson.M{"$nin": []string{"Cancelled", "Completed"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming appointments: %w", err)
	}

	stats := &models.AppointmentStats{
		Total:    total,
		Upcoming: upcoming,
		ByStatus: map[string]int64{},
		ByType:   map[string]int64{},
	}

	for _, status := range models.AppointmentStatuses {
		count, err := collection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, fmt.Errorf("failed to count appointments by status: %w", err)
		}
		stats.ByStatus[status] = count
	}
	for _, appointmentType := range models.AppointmentTypes {
		count, err := collection.CountDocuments(ctx, bson.M{"type": appointmentType})
		if err != nil {
			return nil, fmt.Errorf("failed to count appointments by type: %w", err)
		}
		stats.ByType[appointmentType] = count
	}

	if payload, err := json.Marshal(stats); err == nil {
		config.Redis.Set(ctx, appointmentStatsCacheKey, string(payload), config.AppConfig.RedisTTL)
	}

	return stats, nil
}

func (s *AppointmentService) invalidateStatsCache(ctx context.Context) {
	if err := config.Redis.Del(ctx, appointmentStatsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate appointment stats cache", zap.Error(err))
	}
}
