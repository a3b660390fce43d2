package userRepo

import (
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns (nil, nil)
	// when no such user exists.
	GetByEmail(email string) (*models.User, error)
	// GetByUsername retrieves a user by its username. Returns (nil, nil)
	// when no such user exists.
	GetByUsername(username string) (*models.User, error)
	// GetAll retrieves all users, newest first.
	GetAll() ([]models.User, error)
	// GetManyByIDs retrieves the users whose IDs appear in ids.
	GetManyByIDs(ids []string) ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// UpdateSetDocument applies a $set update to the user document.
	UpdateSetDocument(id string, updateDoc bson.M) error
}
