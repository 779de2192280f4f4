package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "parkify/internal/errors"
	"parkify/internal/logger"
	"parkify/internal/models"
	"parkify/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthOptions struct {
	Secret     []byte
	SessionTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
}

// Claims carried by a session token. ID is the session id, Subject the user id.
type Claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

type builtinAccount struct {
	user     models.User
	password string
}

// Demo accounts that always exist and cannot be registered again.
var builtinAccounts = []builtinAccount{
	{user: models.User{ID: "1", Email: "admin@parkify.com", Name: "Admin User", Role: models.RoleAdmin}, password: "admin123"},
	{user: models.User{ID: "2", Email: "user@example.com", Name: "Regular User", Role: models.RoleUser}, password: "user123"},
}

// AuthService is the identity provider: it checks credentials, registers
// users and issues sessions.
type AuthService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	publisher   Publisher
	opts        AuthOptions
	clock       func() time.Time

	builtins []models.User
}

func NewAuthService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, publisher Publisher, opts AuthOptions, clock func() time.Time) (*AuthService, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if clock == nil {
		clock = time.Now
	}

	builtins := make([]models.User, len(builtinAccounts))
	for i, acc := range builtinAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), opts.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash built-in password: %w", err)
		}
		builtins[i] = acc.user
		builtins[i].PasswordHash = string(hash)
	}

	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		opts:        opts,
		clock:       clock,
		builtins:    builtins,
	}, nil
}

// Login checks credentials against built-in and registered users.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user := s.findByEmail(strings.TrimSpace(req.Email))
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.startSession(ctx, *user)
}

// Register creates a regular user and logs them in.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if s.findByEmail(email) != nil {
		return nil, apperrors.ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           "user-" + uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         models.RoleUser,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailInUse) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.WithContext(ctx).Info("User registered", "user_id", user.ID)

	if s.publisher != nil {
		event := models.UserRegisteredEvent{UserID: user.ID, Email: user.Email, Name: user.Name, Timestamp: time.Now()}
		if err := s.publisher.Publish(models.EventUserRegistered, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish event",
				"error", err,
				"event_type", models.EventUserRegistered)
		}
	}

	return s.startSession(ctx, user)
}

// Logout removes the current-user record of the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate verifies a session token and that its session is still open.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock))
	if err != nil || !parsed.Valid {
		return nil, apperrors.ErrUnauthorized
	}

	session, err := s.sessionRepo.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.User.ID != claims.Subject {
		return nil, apperrors.ErrUnauthorized
	}

	return &models.Actor{
		UserID:    session.User.ID,
		Name:      session.User.Name,
		Email:     session.User.Email,
		Role:      session.User.Role,
		SessionID: session.ID,
	}, nil
}

// ListUsers returns built-in and registered users ordered by email.
func (s *AuthService) ListUsers() []models.User {
	users := append([]models.User(nil), s.builtins...)
	users = append(users, s.userRepo.List()...)
	for i := range users {
		users[i].PasswordHash = ""
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users
}

func (s *AuthService) findByEmail(email string) *models.User {
	for _, u := range s.builtins {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user
		}
	}
	return s.userRepo.GetByEmail(email)
}

func (s *AuthService) startSession(ctx context.Context, user models.User) (*models.AuthResponse, error) {
	now := s.clock()
	session := models.Session{
		ID:        uuid.New().String(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.SessionTTL),
	}
	session.User.PasswordHash = ""

	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opts.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &models.AuthResponse{Token: token, ExpiresAt: session.ExpiresAt, User: session.User}, nil
}
