package identity

import (
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account in the user directory. A user belongs to at most
// one tenant; TenantID is nil only for accounts created mid-signup, before
// their company record exists.
type User struct {
	ID           uuid.UUID
	TenantID     *uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	Admin        bool
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new active user with a bcrypt-hashed password
func NewUser(email, password, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// AssignTenant binds the user to a tenant
func (u *User) AssignTenant(tenantID uuid.UUID) {
	u.TenantID = &tenantID
	u.UpdatedAt = time.Now()
}

// VerifyPassword checks the given password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin updates the last login timestamp
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// TenantIDString returns the tenant id as a string, or empty when the user
// has no tenant yet
func (u *User) TenantIDString() string {
	if u.TenantID == nil {
		return ""
	}
	return u.TenantID.String()
}
