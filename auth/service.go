package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"attestflow/docstore"
)

const (
	usersKey       = "users"
	currentUserKey = "user"
)

var (
	// ErrInvalidCredentials signals wrong username or password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrWeakPassword signals the password doesn't meet requirements.
	ErrWeakPassword = errors.New("auth: password must be at least 8 characters")
	// ErrDuplicateUsername signals the username is already registered.
	ErrDuplicateUsername = errors.New("auth: username already registered")
	// ErrNotLoggedIn signals no current-user record exists.
	ErrNotLoggedIn = errors.New("auth: not logged in")
)

// Service handles registration, login and the current-user record. Accounts
// live under the users document; the active session is mirrored into the
// "user" document the portal header and profile read.
type Service struct {
	store      docstore.Store
	jwtSecret  []byte
	tokenTTL   time.Duration
	loginDelay time.Duration
	now        func() time.Time
}

// LoginResult bundles the token and user returned after a successful login.
type LoginResult struct {
	Token string
	User  User
}

func NewService(store docstore.Store, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// WithLoginDelay enables the simulated network latency on login. The delay
// respects context cancellation, so a torn-down caller never triggers a
// late state write.
func (s *Service) WithLoginDelay(delay time.Duration) *Service {
	s.loginDelay = delay
	return s
}

// WithClock overrides the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("auth: username is required")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return nil, ErrDuplicateUsername
		}
	}

	user := User{
		Username:     username,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(passwordHash),
		CreatedAt:    s.now().UTC(),
	}
	users = append(users, user)

	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates a user, records the current-user document, and
// returns a signed token. The configured delay simulates the original
// portal's network latency and aborts cleanly on context cancellation.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	if s.loginDelay > 0 {
		timer := time.NewTimer(s.loginDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return LoginResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return LoginResult{}, err
	}

	var user *User
	for i := range users {
		if strings.EqualFold(users[i].Username, req.Username) {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	current, err := json.Marshal(CurrentUser{Username: user.Username})
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: marshal current user: %w", err)
	}
	if err := s.store.Set(ctx, currentUserKey, current); err != nil {
		return LoginResult{}, fmt.Errorf("auth: record login: %w", err)
	}

	token, err := s.generateToken(user.Username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: generate token: %w", err)
	}

	return LoginResult{Token: token, User: *user}, nil
}

// Logout removes the current-user document.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, currentUserKey); err != nil {
		return fmt.Errorf("auth: record logout: %w", err)
	}
	return nil
}

// Current reads the current-user document. Absence means nobody is logged
// in, which is a normal outcome.
func (s *Service) Current(ctx context.Context) (CurrentUser, error) {
	raw, ok, err := s.store.Get(ctx, currentUserKey)
	if err != nil {
		return CurrentUser{}, fmt.Errorf("auth: read current user: %w", err)
	}
	if !ok {
		return CurrentUser{}, ErrNotLoggedIn
	}

	var current CurrentUser
	if err := json.Unmarshal(raw, &current); err != nil {
		return CurrentUser{}, fmt.Errorf("auth: decode current user: %w", err)
	}
	return current, nil
}

// VerifyToken validates a token and returns the username it was issued for.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("auth: parse token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		username, ok := claims["username"].(string)
		if !ok {
			return "", fmt.Errorf("auth: invalid username in token")
		}
		return username, nil
	}

	return "", fmt.Errorf("auth: invalid token")
}

func (s *Service) generateToken(username string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"username": username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *Service) loadUsers(ctx context.Context) ([]User, error) {
	raw, ok, err := s.store.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("auth: read users: %w", err)
	}
	if !ok {
		return []User{}, nil
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("auth: decode users: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(ctx context.Context, users []User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("auth: marshal users: %w", err)
	}
	if err := s.store.Set(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("auth: write users: %w", err)
	}
	return nil
}
