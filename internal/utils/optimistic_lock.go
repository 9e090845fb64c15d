package utils

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
)

// OptimisticLockError represents an optimistic locking conflict
type OptimisticLockError struct {
	Resource string
	Message  string
}

func (e OptimisticLockError) Error() string {
	return fmt.Sprintf("optimistic lock conflict for %s: %s", e.Resource, e.Message)
}

// OptimisticUpdateResult represents the result of an optimistic update
type OptimisticUpdateResult struct {
	ModifiedCount int64
	Version       int32
	UpdatedAt     time.Time
}

// UpdateWithOptimisticLock performs an update that only applies when the
// stored document still carries the expected version. Callers that skip the
// version check keep the portal's original last-write-wins behavior.
func UpdateWithOptimisticLock(ctx context.Context, collection string, filter bson.M, update bson.M, expectedVersion int32) (*OptimisticUpdateResult, error) {
	logger := logging.Logger.With(
		zap.String("collection", collection),
		zap.Int32("expected_version", expectedVersion),
	)

	// Add version check to filter
	filter["version"] = expectedVersion

	newVersion := expectedVersion + 1
	now := time.Now()

	// Ensure update is a $set operation
	if update["$set"] == nil {
		update["$set"] = bson.M{}
	}

	update["$set"].(bson.M)["version"] = newVersion
	update["$set"].(bson.M)["updated_at"] = now

	result, err := config.MongoDB.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		logger.Error("failed to perform optimistic update", zap.Error(err))
		return nil, fmt.Errorf("failed to perform optimistic update: %w", err)
	}

	if result.ModifiedCount == 0 {
		// Build filter without version to check if the document exists at all
		checkFilter := bson.M{}
		for k, v := range filter {
			if k != "version" {
				checkFilter[k] = v
			}
		}

		var existingDoc bson.M
		err := config.MongoDB.Collection(collection).FindOne(ctx, checkFilter).Decode(&existingDoc)
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("document not found")
		}
		if err != nil {
			logger.Error("failed to check existing document", zap.Error(err))
			return nil, fmt.Errorf("failed to check existing document: %w", err)
		}

		existingVersion, _ := existingDoc["version"].(int32)
		logger.Warn("optimistic lock conflict detected",
			zap.Int32("expected_version", expectedVersion),
			zap.Int32("actual_version", existingVersion))

		return nil, OptimisticLockError{
			Resource: collection,
			Message:  fmt.Sprintf("expected version %d, but document has version %d", expectedVersion, existingVersion),
		}
	}

	return &OptimisticUpdateResult{
		ModifiedCount: result.ModifiedCount,
		Version:       newVersion,
		UpdatedAt:     now,
	}, nil
}
