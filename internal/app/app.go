package app

import (
	"fmt"
	"strings"
	"time"

	"artisanmarket/internal/events"
	"artisanmarket/internal/storage"
	"artisanmarket/internal/store"
	"artisanmarket/internal/token"
	"artisanmarket/internal/util"
	"artisanmarket/pkg/auth"
	"artisanmarket/pkg/domain"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL string
	Tokens      *token.Manager
	Store       store.Store
	Blobs       storage.BlobStore
	Events      *events.Publisher
}

// App is the core application service wiring together storage, auth, uploads
// and messaging.
type App struct {
	store  store.Store
	tokens *token.Manager
	blobs  storage.BlobStore
	events *events.Publisher
}

// New constructs the application. A Store supplied in Config takes precedence
// over DatabaseURL; Events may be nil when messaging is not configured.
func New(cfg Config) (*App, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token manager required")
	}
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	return &App{
		store:  dataStore,
		tokens: cfg.Tokens,
		blobs:  cfg.Blobs,
		events: cfg.Events,
	}, nil
}

// Blobs exposes the configured blob store for the HTTP upload handlers.
func (a *App) Blobs() storage.BlobStore {
	return a.blobs
}

// SignUpInput carries the registration form fields.
type SignUpInput struct {
	Name      string
	Email     string
	Password  string
	Role      string
	CraftType string
	Location  string
}

// SignUp registers a new user and issues a session token.
func (a *App) SignUp(in SignUpInput) (domain.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return domain.User{}, "", fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	role := domain.UserRole(strings.TrimSpace(strings.ToLower(in.Role)))
	switch role {
	case "":
		role = domain.RoleBuyer
	case domain.RoleBuyer, domain.RoleArtisan:
	default:
		return domain.User{}, "", fmt.Errorf("%w: role must be buyer or artisan", ErrValidation)
	}
	exists, err := a.store.HasUserEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, "", ErrEmailTaken
	}
	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           util.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CraftType:    strings.TrimSpace(in.CraftType),
		Location:     strings.TrimSpace(in.Location),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, "", fmt.Errorf("save user: %w", err)
	}
	tok, err := a.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, tok, nil
}

// Login validates credentials and issues a session token.
func (a *App) Login(email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	tok, err := a.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, tok, nil
}

// UserFromToken resolves a user from a bearer token.
func (a *App) UserFromToken(tok string) (domain.User, bool) {
	principal, err := a.tokens.Verify(tok)
	if err != nil {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(principal.ID)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}
