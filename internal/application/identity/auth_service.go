package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations: login, signup, token refresh
// and logout. Credential failures are reported with a single INVALID_CREDENTIALS
// error regardless of whether the email or the password was wrong.
type AuthService struct {
	users   identity.UserRepository
	tenants identity.TenantRepository
	tokens  *auth.TokenService
	logger  *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	tenants identity.TenantRepository,
	tokens *auth.TokenService,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:   users,
		tenants: tenants,
		tokens:  tokens,
		logger:  logger,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login for unknown email", zap.String("email", email))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		s.logger.Warn("login for deactivated account", zap.String("email", email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("login with wrong password", zap.String("email", email))
		return nil, errInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.Email, user.TenantIDString())
	if err != nil {
		s.logger.Error("token issuance failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue tokens")
	}

	user.RecordLogin(time.Now())
	if err := s.users.Update(ctx, user); err != nil {
		// Login already succeeded; losing the timestamp is acceptable.
		s.logger.Error("failed to record login time", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("email", user.Email),
		zap.String("tenant_id", user.TenantIDString()))

	return &LoginResult{User: NewUserInfo(user), Tokens: pair}, nil
}

// Register creates a tenant and its first user in one step, then logs the
// user in. The first user of a tenant is its admin.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	plan := identity.PlanBasic
	if input.Plan != "" {
		parsed, err := identity.ParsePlan(input.Plan)
		if err != nil {
			return nil, err
		}
		plan = parsed
	}

	tenant, err := identity.NewTenant(input.CompanyName, plan)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(email, input.Password, input.DisplayName)
	if err != nil {
		return nil, err
	}
	user.Admin = true
	user.AssignTenant(tenant.ID)

	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		// The two saves are not one transaction; without this a user-save
		// failure (e.g. an email claimed between pre-check and save) would
		// leave an orphan tenant behind.
		if delErr := s.tenants.Delete(ctx, tenant.ID); delErr != nil {
			s.logger.Error("orphan tenant cleanup failed",
				zap.String("tenant_id", tenant.ID.String()),
				zap.Error(delErr))
		}
		return nil, err
	}

	pair, err := s.tokens.IssuePair(user.Email, user.TenantIDString())
	if err != nil {
		s.logger.Error("token issuance failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue tokens")
	}

	s.logger.Info("tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("tenant_name", tenant.Name),
		zap.String("plan", string(tenant.Plan)),
		zap.String("email", user.Email))

	return &RegisterResult{
		User:   NewUserInfo(user),
		Tenant: NewTenantInfo(tenant, time.Now()),
		Tokens: pair,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The user is
// re-read so that a deactivated account cannot keep refreshing.
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*auth.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(input.RefreshToken)
	if err != nil {
		s.logger.Warn("refresh token rejected", zap.Error(err))
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
		}
		return nil, err
	}
	if !user.Active {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	pair, err := s.tokens.IssuePair(user.Email, user.TenantIDString())
	if err != nil {
		s.logger.Error("token issuance failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue tokens")
	}
	return pair, nil
}

// Logout acknowledges a client-side logout. Tokens are not revocable server
// side; they expire naturally. The call exists so clients have a uniform
// endpoint and the event shows up in logs.
func (s *AuthService) Logout(_ context.Context, subjectEmail string) {
	s.logger.Info("user logged out", zap.String("email", subjectEmail))
}
