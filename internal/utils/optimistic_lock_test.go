package utils

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
)

// setupOptimisticLockTest connects to the test MongoDB instance, skipping
// when none is available
func setupOptimisticLockTest(t *testing.T) func() {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		t.Skip("Skipping optimistic lock tests: MONGODB_URI not set")
	}

	logging.InitLogger()

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	require.NoError(t, err, "Failed to connect to MongoDB")

	err = client.Ping(ctx, nil)
	require.NoError(t, err, "Failed to ping MongoDB")

	config.MongoDB = client.Database("barangay_portal_test")

	return func() {
		config.MongoDB.Drop(ctx)
		client.Disconnect(ctx)
	}
}

func insertVersionedDocument(t *testing.T, ctx context.Context, collection, recordID string, version int32) {
	doc := bson.M{
		"record_id":  recordID,
		"version":    version,
		"updated_at": time.Now(),
		"data":       "initial",
	}

	_, err := config.MongoDB.Collection(collection).InsertOne(ctx, doc)
	require.NoError(t, err, "Failed to insert test document")
}

func TestOptimisticLockError_Error(t *testing.T) {
	err := OptimisticLockError{
		Resource: "residents",
		Message:  "version mismatch",
	}

	expected := "optimistic lock conflict for residents: version mismatch"
	assert.Equal(t, expected, err.Error())
}

func TestOptimisticLockError_IsError(t *testing.T) {
	var err error = OptimisticLockError{
		Resource: "hotlines",
		Message:  "conflict",
	}

	var lockErr OptimisticLockError
	assert.True(t, errors.As(err, &lockErr))
	assert.Equal(t, "hotlines", lockErr.Resource)
}

func TestOptimisticUpdateResult_ZeroValues(t *testing.T) {
	result := OptimisticUpdateResult{}

	assert.Equal(t, int64(0), result.ModifiedCount)
	assert.Equal(t, int32(0), result.Version)
	assert.True(t, result.UpdatedAt.IsZero())
}

func TestUpdateWithOptimisticLock_SuccessfulUpdate(t *testing.T) {
	cleanup := setupOptimisticLockTest(t)
	defer cleanup()

	ctx := context.Background()
	collection := "test_residents"
	recordID := "resident-1"

	insertVersionedDocument(t, ctx, collection, recordID, 1)

	filter := bson.M{"record_id": recordID}
	update := bson.M{
		"$set": bson.M{
			"data": "updated",
		},
	}

	result, err := UpdateWithOptimisticLock(ctx, collection, filter, update, 1)

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(1), result.ModifiedCount)
	assert.Equal(t, int32(2), result.Version)
	assert.False(t, result.UpdatedAt.IsZero())

	var doc bson.M
	err = config.MongoDB.Collection(collection).FindOne(ctx, bson.M{"record_id": recordID}).Decode(&doc)
	require.NoError(t, err)
	assert.Equal(t, int32(2), doc["version"].(int32))
	assert.Equal(t, "updated", doc["data"].(string))
}

func TestUpdateWithOptimisticLock_VersionConflict(t *testing.T) {
	cleanup := setupOptimisticLockTest(t)
	defer cleanup()

	ctx := context.Background()
	collection := "test_residents"
	recordID := "resident-2"

	insertVersionedDocument(t, ctx, collection, recordID, 2)

	filter := bson.M{"record_id": recordID}
	update := bson.M{
		"$set": bson.M{
			"data": "should fail",
		},
	}

	result, err := UpdateWithOptimisticLock(ctx, collection, filter, update, 1)

	require.Error(t, err)
	assert.Nil(t, result)

	var lockErr OptimisticLockError
	assert.True(t, errors.As(err, &lockErr))
	assert.Contains(t, lockErr.Error(), "expected version 1, but document has version 2")

	var doc bson.M
	err = config.MongoDB.Collection(collection).FindOne(ctx, bson.M{"record_id": recordID}).Decode(&doc)
	require.NoError(t, err)
	assert.Equal(t, "initial", doc["data"].(string))
}

func TestUpdateWithOptimisticLock_DocumentNotFound(t *testing.T) {
	cleanup := setupOptimisticLockTest(t)
	defer cleanup()

	ctx := context.Background()
	collection := "test_residents"

	filter := bson.M{"record_id": "missing"}
	update := bson.M{
		"$set": bson.M{
			"data": "new data",
		},
	}

	result, err := UpdateWithOptimisticLock(ctx, collection, filter, update, 1)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "document not found")
}

func TestUpdateWithOptimisticLock_UpdateWithoutSetOperation(t *testing.T) {
	cleanup := setupOptimisticLockTest(t)
	defer cleanup()

	ctx := context.Background()
	collection := "test_residents"
	recordID := "resident-3"

	insertVersionedDocument(t, ctx, collection, recordID, 1)

	filter := bson.M{"record_id": recordID}
	update := bson.M{
		"$inc": bson.M{
			"counter": 1,
		},
	}

	result, err := UpdateWithOptimisticLock(ctx, collection, filter, update, 1)

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int32(2), result.Version)

	var doc bson.M
	err = config.MongoDB.Collection(collection).FindOne(ctx, bson.M{"record_id": recordID}).Decode(&doc)
	require.NoError(t, err)
	assert.Equal(t, int32(2), doc["version"].(int32))
	assert.NotNil(t, doc["updated_at"])
}
