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

var incidentSearchFields = []string{"title", "description", "location.address", "reporter.name", "assigned_to"}

const incidentStatsCacheKey = "stats:incident_reports"

// IncidentReportService handles incident report operations
type IncidentReportService struct {
	logger *logging.SafeLogger
}

// NewIncidentReportService creates a new incident report service
func NewIncidentReportService(logger *logging.SafeLogger) *IncidentReportService {
	return &IncidentReportService{logger: logger}
}

// List returns a page of incident reports matching the query
func (s *IncidentReportService) List(ctx context.Context, q ListQuery) (*models.IncidentReportListResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.IncidentReportCollection)
	filter := q.BuildFilter(incidentSearchFields)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count incident reports: %w", err)
	}

	cursor, err := collection.Find(ctx, filter, q.FindOptions("occurred_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to list incident reports: %w", err)
	}
	defer cursor.Close(ctx)

	data := []models.IncidentReport{}
	for cursor.Next(ctx) {
		var report models.IncidentReport
		if err := cursor.Decode(&report); err != nil {
			s.logger.Warn("failed to decode incident report document", zap.Error(err))
			continue
		}
		data = append(data, report)
	}

	return &models.IncidentReportListResponse{
		Success:    true,
		Data:       data,
		Pagination: models.NewPaginationInfo(q.Page, q.PerPage, total),
	}, nil
}

// ListByReporterEmail returns the reports a citizen filed, newest first.
// Reporter data is inline on the report, so the citizen's email is the
// only join key available.
func (s *IncidentReportService) ListByReporterEmail(ctx context.Context, email string, q ListQuery) (*models.IncidentReportListResponse, error) {
	q.Filters["reporter.email"] = email
	if q.SortBy == "" {
		q.SortBy = "created_at"
		q.SortDir = "desc"
	}
	return s.List(ctx, q)
}

// Emergency returns the unresolved reports flagged as emergencies
func (s *IncidentReportService) Emergency(ctx context.Context) ([]models.IncidentReport, error) {
	filter := bson.M{
		"is_emergency": true,
		"status":       bson.M{"$nin": []string{"Resolved", "Rejected"}},
	}

	q := NewListQuery(1, 100)
	q.SortDir = "desc"
	collection := config.MongoDB.Collection(config.AppConfig.IncidentReportCollection)
	cursor, err := collection.Find(ctx, filter, q.FindOptions("occurred_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to load emergency reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []models.IncidentReport{}
	for cursor.Next(ctx) {
		var report models.IncidentReport
		if err := cursor.Decode(&report); err != nil {
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// Get retrieves an incident report by ID
func (s *IncidentReportService) Get(ctx context.Context, id string) (*models.IncidentReport, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.IncidentReportCollection)

	var report models.IncidentReport
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("failed to get incident report: %w", err)
	}

	return &report, nil
}

// Create inserts a new incident report. Both client location shapes are
// normalized before storage.
func (s *IncidentReportService) Create(ctx context.Context, req models.IncidentReportRequest) (*models.IncidentReport, error) {
	report := &models.IncidentReport{
		Title:           req.Title,
		Description:     req.Description,
		IncidentTypes:   req.IncidentTypes,
		Location:        req.Location.Normalize(),
		OccurredAt:      req.OccurredAt,
		Reporter:        req.Reporter,
		AffectedPersons: req.AffectedPersons,
		Severity:        req.Severity,
		Priority:        req.Priority,
		IsEmergency:     req.IsEmergency,
		Status:          req.Status,
	}
	report.BeforeCreate()

	collection := config.MongoDB.Collection(config.AppConfig.IncidentReportCollection)
	result, err := collection.InsertOne(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to create incident report: %w", err)
	}

	report.ID = result.InsertedID.(primitive.ObjectID)
	if report.IsEmergency {
		observability.EmergencyReports.Inc()
	}
	s.invalidateStatsCache(ctx)

	return report, nil
}

// Update replaces the editable fields of an incident report
func (s *IncidentReportService) Update(ctx context.Context, id string, req models.IncidentReportRequest) (*models.IncidentReport, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	set := bson.M{
		"title":            req.Title,
		"description":      req.Description,
		"incident_types":   req.IncidentTypes,
		"location":         req.Location.Normalize(),
		"occurred_at":      req.OccurredAt,
		"reporter":         req.Reporter,
		"affected_persons": req.AffectedPersons,
		"severity":         req.Severity,
		"priority":         req.Priority,
		"is_emergency":     req.IsEmergency,
	}
	if req.Status != "" {
		set["status"] = req.Status
	}

	if req.Version != nil {
		_, err := utils.UpdateWithOptimisticLock(ctx,
			config.AppConfig.IncidentReportCollection,
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
		result, err := config.MongoDB.Collection(config.AppConfig.IncidentReportCollection).
			UpdateOne(ctx, bson.M{"_id": objectID}, update)
		if err != nil {
			return nil, fmt.Errorf("failed to update incident report: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, models.ErrIncidentNotFound
		}
	}

	if req.Status != "" {
		observability.StatusTransitions.WithLabelValues("incident_report", req.Status).Inc()
	}
	s.invalidateStatsCache(ctx)
	return s.Get(ctx, id)
}

// Delete removes an incident report
func (s *IncidentReportService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.IncidentReportCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete incident report: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrIncidentNotFound
	}

	s.invalidateStatsCache(ctx)
	return nil
}

// BulkUpdateStatus sets the status on a set of reports, optionally
// assigning them to a handler
func (s *IncidentReportService) BulkUpdateStatus(ctx context.Context, ids []string, status, assignedTo string) (*BulkUpdateResult, error) {
	if len(ids) == 0 {
		return nil, models.ErrEmptyIDList
	}
	if !models.IsValidIncidentStatus(status) {
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

	collection := config.MongoDB.Collection(config.AppConfig.IncidentReportCollection)
	result, err := collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": objectIDs}},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk update status: %w", err)
	}

	if result.MatchedCount != int64(len(ids)) {
		s.logger.Warn("bulk status update matched fewer reports than requested",
			zap.Int64("matched", result.MatchedCount),
			zap.Int("requested", len(ids)))
	}

	observability.StatusTransitions.WithLabelValues("incident_report", status).Add(float64(result.ModifiedCount))
	s.invalidateStatsCache(ctx)
	return &BulkUpdateResult{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

// Stats returns the incident statistics overview, cached in Redis
func (s *IncidentReportService) Stats(ctx context.Context) (*models.IncidentStats, error) {
	cached := config.Redis.Get(ctx, incidentStatsCacheKey)
	if val, err := cached.Result(); err == nil && val != "" {
		var stats models.IncidentStats
		if err := json.Unmarshal([]byte(val), &stats); err == nil {
			observability.CacheHits.WithLabelValues("incident_stats").Inc()
			return &stats, nil
		}
	}

	collection := config.MongoDB.Collection(config.AppConfig.IncidentReportCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count incident reports: %w", err)
	}
	emergencies, err := collection.CountDocuments(ctx, bson.M{"is_emergency": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count emergencies: %w", err)
	}

	stats := &models.IncidentStats{
		Total:       total,
		Emergencies: emergencies,
		ByStatus:    map[string]int64{},
		BySeverity:  map[string]int64{},
	}

	for _, status := range models.IncidentStatuses {
		count, err := collection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return nil, fmt.Errorf("failed to count reports by status: %w", err)
		}
		stats.ByStatus[status] = count
	}
	for _, severity := range models.IncidentSeverities {
		count, err := collection.CountDocuments(ctx, bson.M{"severity": severity})
		if err != nil {
			return nil, fmt.Errorf("failed to count reports by severity: %w", err)
		}
		stats.BySeverity[severity] = count
	}

	if payload, err := json.Marshal(stats); err == nil {
		config.Redis.Set(ctx, incidentStatsCacheKey, string(payload), config.AppConfig.RedisTTL)
	}

	return stats, nil
}

func (s *IncidentReportService) invalidateStatsCache(ctx context.Context) {
	if err := config.Redis.Del(ctx, incidentStatsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate incident stats cache", zap.Error(err))
	}
}
