package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/models"
	"github.com/barangay-portal/api/internal/observability"
	"github.com/barangay-portal/api/internal/utils"
)

// AuthService handles citizen account registration, sessions and recovery
type AuthService struct {
	logger *logging.SafeLogger
	email  *EmailService
}

// NewAuthService creates a new citizen auth service
func NewAuthService(logger *logging.SafeLogger, email *EmailService) *AuthService {
	return &AuthService{logger: logger, email: email}
}

func (s *AuthService) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.CitizenAccountCollection)
}

// Register creates a citizen account and sends the verification mail.
// Emails are stored lowercased so lookups are case-insensitive.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.CitizenAccount, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	count, err := s.collection().CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, models.ErrEmailExists
	}

	phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		phone = req.PhoneNumber
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), config.AppConfig.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.CitizenAccount{
		Email:             email,
		PasswordHash:      string(hash),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		PhoneNumber:       phone,
		VerificationToken: uuid.NewString(),
	}
	account.BeforeCreate()

	result, err := s.collection().InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	account.ID = result.InsertedID.(primitive.ObjectID)

	if err := s.email.SendVerificationEmail(account.Email, account.VerificationToken); err != nil {
		s.logger.Error("failed to send verification email",
			zap.String("email", observability.MaskEmail(account.Email)),
			zap.Error(err))
	}

	s.logger.Info("citizen account registered",
		zap.String("email", observability.MaskEmail(account.Email)))

	return account, nil
}

// Login verifies citizen credentials and issues a session token. Unverified
// and deactivated accounts are rejected after the password check so the
// distinct errors never leak whether a password was correct.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var account models.CitizenAccount
	err := s.collection().FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if !account.EmailVerified {
		return nil, models.ErrEmailNotVerified
	}
	if !account.IsActive {
		return nil, models.ErrAccountInactive
	}

	token, err := issueToken(account.ID.Hex(), models.PrincipalKindCitizen, "", account.Email, nil)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Success: true, Token: token, User: account}, nil
}

// Profile retrieves a citizen account by ID
func (s *AuthService) Profile(ctx context.Context, id string) (*models.CitizenAccount, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	var account models.CitizenAccount
	err = s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// UpdateProfile edits the citizen's own profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, id string, req models.ProfileUpdateRequest) (*models.CitizenAccount, error) {
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
	if req.PhoneNumber != "" {
		phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
		if err != nil {
			phone = req.PhoneNumber
		}
		set["phone_number"] = phone
	}

	result, err := s.collection().UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, models.ErrAccountNotFound
	}

	return s.Profile(ctx, id)
}

// VerifyEmail marks the account behind a verification token as verified
// and consumes the token
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return models.ErrInvalidToken
	}

	result, err := s.collection().UpdateOne(ctx,
		bson.M{"verification_token": token},
		bson.M{
			"$set":   bson.M{"email_verified": true, "updated_at": time.Now()},
			"$unset": bson.M{"verification_token": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrInvalidToken
	}

	return nil
}

// ForgotPassword issues a reset token and mails the reset link. Unknown
// emails return nil so the endpoint never reveals which accounts exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	token := uuid.NewString()
	expiry := time.Now().Add(config.AppConfig.ResetTokenTTL)

	result, err := s.collection().UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"reset_token":        token,
			"reset_token_expiry": expiry,
			"updated_at":         time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		s.logger.Info("password reset requested for unknown email",
			zap.String("email", observability.MaskEmail(email)))
		return nil
	}

	if err := s.email.SendPasswordResetEmail(email, token); err != nil {
		s.logger.Error("failed to send password reset email",
			zap.String("email", observability.MaskEmail(email)),
			zap.Error(err))
	}

	return nil
}

// ResetPassword sets a new password for the account behind an unexpired
// reset token and consumes the token
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if req.Token == "" {
		return models.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), config.AppConfig.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := s.collection().UpdateOne(ctx,
		bson.M{
			"reset_token":        req.Token,
			"reset_token_expiry": bson.M{"$gt": time.Now()},
		},
		bson.M{
			"$set":   bson.M{"password_hash": string(hash), "updated_at": time.Now()},
			"$unset": bson.M{"reset_token": "", "reset_token_expiry": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrInvalidToken
	}

	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// account. Like ForgotPassword, unknown emails return nil.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	token := uuid.NewString()
	result, err := s.collection().UpdateOne(ctx,
		bson.M{"email": email, "email_verified": false},
		bson.M{"$set": bson.M{"verification_token": token, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to refresh verification token: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil
	}

	if err := s.email.SendVerificationEmail(email, token); err != nil {
		s.logger.Error("failed to send verification email",
			zap.String("email", observability.MaskEmail(email)),
			zap.Error(err))
	}

	return nil
}
