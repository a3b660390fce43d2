package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"glowbook/models"
	"glowbook/services/session"
	"glowbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionRecordPrefix = "session:"

// sessionRecord is the Redis payload tying a client to its signed-in user.
type sessionRecord struct {
	UserID    string    `json:"userId"`
	TokenHash string    `json:"tokenHash"`
	CreatedAt time.Time `json:"createdAt"`
}

func sessionKey(clientID string) string {
	return sessionRecordPrefix + clientID
}

// SignIn verifies credentials, issues a JWT and records the client's
// session. Lookup failures and password mismatches are indistinguishable to
// the caller.
func (s *DefaultUserService) SignIn(ctx context.Context, clientID, identifier, password string) (*models.User, string, error) {
	userRec, err := s.Repo.GetByEmail(identifier)
	if err != nil {
		s.logger().Error("SignIn: failed to fetch user", zap.Error(err))
		return nil, "", fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, "", session.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, "", session.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, userRec.ClaimsAdmin, utils.UserTokenTTL)
	if err != nil {
		s.logger().Error("SignIn: failed to issue token", zap.Error(err))
		return nil, "", fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	record := sessionRecord{UserID: userRec.ID, TokenHash: tokenHash, CreatedAt: time.Now()}
	if err := s.saveSessionRecord(ctx, clientID, record); err != nil {
		s.logger().Error("SignIn: failed to record session", zap.Error(err))
		return nil, "", fmt.Errorf("authentication failed, please try again")
	}

	// Warm the auth cache and keep a DB fallback for the guards.
	if err := s.Sessions.Set(ctx, utils.AuthCachePrefix+userRec.ID, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		s.logger().Warn("SignIn: failed to warm auth cache", zap.Error(err))
	}
	if err := s.Repo.UpdateSetDocument(userRec.ID, bson.M{"token_hash": tokenHash}); err != nil {
		s.logger().Warn("SignIn: failed to persist token hash", zap.Error(err))
	}

	return userRec, token, nil
}

// SignUp creates an account. Input validation lives in the caller; only
// uniqueness is enforced here. The returned bool reports whether email
// confirmation is still pending.
func (s *DefaultUserService) SignUp(_ context.Context, params session.SignUpParams) (*models.User, bool, error) {
	if existing, err := s.Repo.GetByEmail(params.Email); err != nil {
		return nil, false, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		return nil, false, ErrEmailTaken
	}
	if existing, err := s.Repo.GetByUsername(params.Username); err != nil {
		return nil, false, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		return nil, false, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("registration failed, please try again")
	}

	newUser := &models.User{
		ID:           uuid.NewString(),
		Email:        params.Email,
		Username:     params.Username,
		FullName:     params.FullName,
		Phone:        params.Phone,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(newUser); err != nil {
		return nil, false, fmt.Errorf("registration failed, please try again")
	}

	// EmailConfirmedAt is unset until the confirmation link is followed.
	return newUser, newUser.EmailConfirmedAt == nil, nil
}

// CurrentUser returns the identity behind the client's session record, or
// (nil, nil) when no session exists.
func (s *DefaultUserService) CurrentUser(ctx context.Context, clientID string) (*models.User, error) {
	record, err := s.loadSessionRecord(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	userRec, err := s.Repo.GetByID(record.UserID)
	if err != nil {
		return nil, err
	}
	if userRec == nil {
		// Account deleted out from under the session.
		_ = s.Sessions.Del(ctx, sessionKey(clientID)).Err()
		return nil, nil
	}
	return userRec, nil
}

// Refresh re-reads the identity so permission claims are current and
// extends the session's lifetime. Returns (nil, nil) when no session exists.
func (s *DefaultUserService) Refresh(ctx context.Context, clientID string) (*models.User, error) {
	userRec, err := s.CurrentUser(ctx, clientID)
	if err != nil || userRec == nil {
		return userRec, err
	}
	if err := s.Sessions.Expire(ctx, sessionKey(clientID), utils.UserTokenTTL).Err(); err != nil {
		s.logger().Warn("Refresh: failed to extend session", zap.Error(err))
	}
	return userRec, nil
}

// SignOut tears down the client's session record and revokes the cached
// token.
func (s *DefaultUserService) SignOut(ctx context.Context, clientID string) error {
	record, err := s.loadSessionRecord(ctx, clientID)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	if err := s.Sessions.Del(ctx, sessionKey(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.Sessions.Del(ctx, utils.AuthCachePrefix+record.UserID).Err(); err != nil {
		s.logger().Warn("SignOut: failed to clear auth cache", zap.Error(err))
	}
	if err := s.Repo.UpdateSetDocument(record.UserID, bson.M{"token_hash": ""}); err != nil {
		s.logger().Warn("SignOut: failed to revoke token hash", zap.Error(err))
	}
	return nil
}

func (s *DefaultUserService) saveSessionRecord(ctx context.Context, clientID string, record sessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.Sessions.Set(ctx, sessionKey(clientID), data, utils.UserTokenTTL).Err()
}

func (s *DefaultUserService) loadSessionRecord(ctx context.Context, clientID string) (*sessionRecord, error) {
	data, err := s.Sessions.Get(ctx, sessionKey(clientID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session record: %w", err)
	}
	var record sessionRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, nil
	}
	return &record, nil
}
