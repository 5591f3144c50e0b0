package identity

import (
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/infrastructure/auth"
)

// LoginInput contains login request data
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the outcome of a successful login
type LoginResult struct {
	User   *UserInfo       `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// RegisterInput contains signup request data. The account and its tenant are
// created in one step.
type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	Plan        string `json:"plan"`
}

// RegisterResult contains the outcome of a successful registration
type RegisterResult struct {
	User   *UserInfo       `json:"user"`
	Tenant *TenantInfo     `json:"tenant"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// RefreshInput contains the refresh token exchange request
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserInfo is the user representation exposed to API clients
type UserInfo struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	TenantID    string     `json:"tenant_id,omitempty"`
	Admin       bool       `json:"admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// TenantInfo is the tenant representation exposed to API clients
type TenantInfo struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Plan      string     `json:"plan"`
	PlanLabel string     `json:"plan_label"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Active    bool       `json:"active"`
	Expired   bool       `json:"expired"`
}

// NewUserInfo maps a domain user to its API representation
func NewUserInfo(user *identity.User) *UserInfo {
	return &UserInfo{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TenantID:    user.TenantIDString(),
		Admin:       user.Admin,
		LastLoginAt: user.LastLoginAt,
	}
}

// NewTenantInfo maps a domain tenant to its API representation
func NewTenantInfo(tenant *identity.Tenant, now time.Time) *TenantInfo {
	return &TenantInfo{
		ID:        tenant.ID.String(),
		Name:      tenant.Name,
		Plan:      string(tenant.Plan),
		PlanLabel: tenant.Plan.Label(),
		ExpiresAt: tenant.ExpiresAt,
		Active:    tenant.Active,
		Expired:   tenant.Expired(now),
	}
}
