package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/models"
)

var adminSearchFields = []string{"username", "first_name", "last_name", "email"}

// AdminUserService handles back-office accounts and admin sessions
type AdminUserService struct {
	logger *logging.SafeLogger
}

// NewAdminUserService creates a new admin user service
func NewAdminUserService(logger *logging.SafeLogger) *AdminUserService {
	return &AdminUserService{logger: logger}
}

// Login verifies admin credentials and issues a session token. Credential
// failures and inactive accounts both surface as invalid credentials so the
// response does not leak which usernames exist.
func (s *AdminUserService) Login(ctx context.Context, req models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.AdminUserCollection)

	var admin models.AdminUser
	err := collection.FindOne(ctx, bson.M{"username": req.Username}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, models.ErrAccountInactive
	}

	token, err := issueToken(admin.ID.Hex(), models.PrincipalKindAdmin, admin.Role, admin.Email, admin.Permissions)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin login",
		zap.String("username", admin.Username),
		zap.String("role", admin.Role))

	return &models.AdminLoginResponse{Success: true, Token: token, Admin: admin}, nil
}

// List returns a page of admin accounts matching the query
func (s *AdminUserService) List(ctx context.Context, q ListQuery) (*models.AdminListResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.AdminUserCollection)
	filter := q.BuildFilter(adminSearchFields)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count admin accounts: %w", err)
	}

	cursor, err := collection.Find(ctx, filter, q.FindOptions("username"))
	if err != nil {
		return nil, fmt.Errorf("failed to list admin accounts: %w", err)
	}
	defer cursor.Close(ctx)

	data := []models.AdminUser{}
	for cursor.Next(ctx) {
		var admin models.AdminUser
		if err := cursor.Decode(&admin); err != nil {
			s.logger.Warn("failed to decode admin document", zap.Error(err))
			continue
		}
		data = append(data, admin)
	}

	return &models.AdminListResponse{
		Success:    true,
		Data:       data,
		Pagination: models.NewPaginationInfo(q.Page, q.PerPage, total),
	}, nil
}

// Get retrieves an admin account by ID
func (s *AdminUserService) Get(ctx context.Context, id string) (*models.AdminUser, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.AdminUserCollection)

	var admin models.AdminUser
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("failed to get admin account: %w", err)
	}

	return &admin, nil
}

// Create inserts a new admin account with its role-derived permissions
func (s *AdminUserService) Create(ctx context.Context, req models.AdminCreateRequest) (*models.AdminUser, error) {
	if !models.IsValidAdminRole(req.Role) {
		return nil, models.ErrInvalidRole
	}

	collection := config.MongoDB.Collection(config.AppConfig.AdminUserCollection)

	count, err := collection.CountDocuments(ctx, bson.M{"username": req.Username})
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, models.ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), config.AppConfig.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         req.Role,
		IsActive:     true,
	}
	admin.BeforeCreate()

	result, err := collection.InsertOne(ctx, admin)
	if err != nil {
		// The unique index is the real guard against a concurrent insert
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}

	admin.ID = result.InsertedID.(primitive.ObjectID)
	s.logger.Info("admin account created",
		zap.String("username", admin.Username),
		zap.String("role", admin.Role))

	return admin, nil
}

// Update edits an admin account, re-deriving permissions when the role
// changes and rehashing when a new password is supplied
func (s *AdminUserService) Update(ctx context.Context, id string, req models.AdminUpdateRequest) (*models.AdminUser, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now()}
	if req.FirstName != "" {
		set["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		set["last_name"] = req.LastName
	}
	if req.Email != "" {
		set["email"] = req.Email
	}
	if req.Role != "" {
		if !models.IsValidAdminRole(req.Role) {
			return nil, models.ErrInvalidRole
		}
		set["role"] = req.Role
		set["permissions"] = models.PermissionsForRole(req.Role)
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), config.AppConfig.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		set["password_hash"] = string(hash)
	}

	collection := config.MongoDB.Collection(config.AppConfig.AdminUserCollection)
	result, err := collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update admin account: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, models.ErrAdminUserNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes an admin account
func (s *AdminUserService) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	collection := config.MongoDB.Collection(config.AppConfig.AdminUserCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete admin account: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrAdminUserNotFound
	}

	return nil
}
