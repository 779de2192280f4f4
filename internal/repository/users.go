package repository

import (
	"context"
	"strings"
	"sync"

	apperrors "parkify/internal/errors"
	"parkify/internal/models"
	"parkify/internal/store"
)

// userRecord is the persisted shape; it keeps the hash that User hides from JSON.
type userRecord struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         models.Role `json:"role"`
	PasswordHash string      `json:"passwordHash"`
}

func (u userRecord) user() models.User {
	return models.User{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, PasswordHash: u.PasswordHash}
}

// UserRepository stores registered users. Built-in accounts are not stored here.
type UserRepository struct {
	kv store.KV

	mu    sync.RWMutex
	users []userRecord
}

func NewUserRepository(ctx context.Context, kv store.KV) (*UserRepository, error) {
	var users []userRecord
	if _, err := store.LoadJSON(ctx, kv, store.KeyRegisteredUsers, &users); err != nil {
		return nil, err
	}
	return &UserRepository{kv: kv, users: users}, nil
}

func (r *UserRepository) List() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.user()
	}
	return out
}

// GetByEmail matches case-insensitively and returns nil when absent.
func (r *UserRepository) GetByEmail(email string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			user := u.user()
			return &user
		}
	}
	return nil
}

func (r *UserRepository) GetByID(id string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			user := u.user()
			return &user
		}
	}
	return nil
}

// Create appends user unless the email is already registered.
func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrEmailInUse
		}
	}

	rec := userRecord{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		PasswordHash: user.PasswordHash,
	}
	next := append(append([]userRecord(nil), r.users...), rec)
	if err := store.SaveJSON(ctx, r.kv, store.KeyRegisteredUsers, next); err != nil {
		return err
	}
	r.users = next
	return nil
}
