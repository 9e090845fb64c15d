package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/redisclient"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}

	// Ping the database
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatal(err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := ensureIndexes(); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Wrap with traced client
	Redis = redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks credentials in a MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	return "mongodb://****:****@" + uri[at+1:]
}

// indexSpec describes one index to ensure on a collection
type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
}

// ensureIndexes creates required indexes if they don't exist
func ensureIndexes() error {
	logger := logging.Logger.With(zap.String("component", "database"))
	logger.Info("ensuring required indexes exist")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	specs := []indexSpec{
		{AppConfig.ResidentCollection, bson.D{{Key: "phone_number", Value: 1}}, false},
		{AppConfig.ResidentCollection, bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}, false},
		{AppConfig.AnnouncementCollection, bson.D{{Key: "is_active", Value: 1}, {Key: "category", Value: 1}, {Key: "date", Value: -1}}, false},
		{AppConfig.HotlineCollection, bson.D{{Key: "category", Value: 1}, {Key: "is_active", Value: 1}}, false},
		{AppConfig.IncidentReportCollection, bson.D{{Key: "status", Value: 1}, {Key: "occurred_at", Value: -1}}, false},
		{AppConfig.IncidentReportCollection, bson.D{{Key: "is_emergency", Value: 1}}, false},
		{AppConfig.IncidentReportCollection, bson.D{{Key: "reporter.email", Value: 1}}, false},
		{AppConfig.AppointmentCollection, bson.D{{Key: "status", Value: 1}, {Key: "scheduled_at", Value: 1}}, false},
		{AppConfig.AppointmentCollection, bson.D{{Key: "contact_info.email", Value: 1}}, false},
		{AppConfig.AdminUserCollection, bson.D{{Key: "username", Value: 1}}, true},
		{AppConfig.CitizenAccountCollection, bson.D{{Key: "email", Value: 1}}, true},
		{AppConfig.AuditLogCollection, bson.D{{Key: "timestamp", Value: -1}}, false},
	}

	for _, spec := range specs {
		model := mongo.IndexModel{Keys: spec.keys}
		if spec.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := MongoDB.Collection(spec.collection).Indexes().CreateOne(ctx, model); err != nil {
			logger.Error("failed to create index",
				zap.String("collection", spec.collection),
				zap.Error(err))
			return err
		}
	}

	logger.Info("all required indexes verified")
	return nil
}
