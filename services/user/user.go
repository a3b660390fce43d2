package user

import (
	"context"

	bookingRepo "glowbook/database/repository/booking"
	userRepo "glowbook/database/repository/user"
	"glowbook/models"
	"glowbook/services/session"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// UserService defines business logic for user operations beyond the
// session.RemoteAuth surface.
type UserService interface {
	session.RemoteAuth
	session.ProfileSource

	// GetUserByID retrieves a user by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// GetUserByEmail retrieves a user by its email.
	GetUserByEmail(email string) (*models.User, error)
	// GetAllUsers retrieves all users, newest first (admin view).
	GetAllUsers() ([]models.User, error)
	// GetUserBookings retrieves a user's own bookings, newest first.
	GetUserBookings(userID string) ([]models.Booking, error)
	// CancelBooking cancels one of the user's own bookings.
	CancelBooking(userID, bookingID string) (*models.Booking, error)
	// UpdateFCMToken records the push token for a user's device.
	UpdateFCMToken(userID, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Bookings bookingRepo.BookingRepository
	Sessions *redis.Client
	Logger   *zap.Logger
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.L()
	}
	return s.Logger
}

// GetUserByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// GetUserByEmail retrieves a user by its email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	return s.Repo.GetByEmail(email)
}

// GetAllUsers retrieves all users, newest first.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}

// GetUserBookings retrieves a user's own bookings.
func (s *DefaultUserService) GetUserBookings(userID string) ([]models.Booking, error) {
	return s.Bookings.GetByUserID(userID)
}

// UpdateFCMToken records the push token for a user's device.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	return s.Repo.UpdateSetDocument(userID, bson.M{"fcm_token": token})
}

// ProfileByUserID fetches the profile record for session enrichment.
func (s *DefaultUserService) ProfileByUserID(_ context.Context, userID string) (*models.Profile, error) {
	u, err := s.Repo.GetByIDWithProjection(userID, bson.M{
		"full_name": 1, "username": 1, "phone": 1,
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &models.Profile{FullName: u.FullName, Username: u.Username, Phone: u.Phone}, nil
}
