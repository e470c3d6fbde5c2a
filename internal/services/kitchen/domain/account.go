package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/id"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Role grants access to parts of the site.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleSubscriber Role = "subscriber"
	RoleAdmin      Role = "admin"
)

// User is a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// RegisterInput carries a sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UserStore persists accounts. Emails are unique.
type UserStore interface {
	PutUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, userID string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	SetUserRole(ctx context.Context, userID string, role Role) error
}

// Accounts registers and signs in users.
type Accounts struct {
	store    UserStore
	clock    func() time.Time
	newID    func() (string, error)
	hashCost int
}

// NewAccounts constructs account use-cases.
func NewAccounts(store UserStore, clock func() time.Time, newID func() (string, error)) *Accounts {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Accounts{store: store, clock: clock, newID: newID, hashCost: bcrypt.DefaultCost}
}

// Register creates a customer account.
func (a *Accounts) Register(ctx context.Context, input RegisterInput) (User, error) {
	return a.create(ctx, input, RoleCustomer)
}

// EnsureAdmin creates an admin account, or promotes the existing account
// with the same email.
func (a *Accounts) EnsureAdmin(ctx context.Context, input RegisterInput) (User, error) {
	existing, err := a.store.GetUserByEmail(ctx, normalizeEmail(input.Email))
	if err == nil {
		if existing.Role != RoleAdmin {
			if err := a.store.SetUserRole(ctx, existing.ID, RoleAdmin); err != nil {
				return User{}, err
			}
			existing.Role = RoleAdmin
		}
		return existing, nil
	}
	if !isNotFound(err) {
		return User{}, err
	}
	return a.create(ctx, input, RoleAdmin)
}

func (a *Accounts) create(ctx context.Context, input RegisterInput, role Role) (User, error) {
	user := User{
		Name:  strings.TrimSpace(input.Name),
		Email: normalizeEmail(input.Email),
		Phone: strings.TrimSpace(input.Phone),
		Role:  role,
	}
	switch {
	case user.Name == "":
		return User{}, apperrors.InvalidArgument("name", "name is required")
	case !strings.Contains(user.Email, "@"):
		return User{}, apperrors.InvalidArgument("email", "a valid email is required")
	case len(input.Password) < minPasswordLength:
		return User{}, apperrors.InvalidArgument("password", "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), a.hashCost)
	if err != nil {
		return User{}, err
	}
	user.PasswordHash = string(hash)
	user.ID, err = a.newID()
	if err != nil {
		return User{}, err
	}
	user.CreatedAt = a.clock().UTC()
	if err := a.store.PutUser(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return User{}, apperrors.Wrap(apperrors.CodeConflict, "email already registered", err)
		}
		return User{}, err
	}
	return user, nil
}

// Authenticate checks an email and password pair.
func (a *Accounts) Authenticate(ctx context.Context, email string, password string) (User, error) {
	user, err := a.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser loads one account.
func (a *Accounts) GetUser(ctx context.Context, userID string) (User, error) {
	return a.store.GetUser(ctx, strings.TrimSpace(userID))
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
