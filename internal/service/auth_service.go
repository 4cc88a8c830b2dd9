package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/metrics"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

const (
	DefaultResetTTL = time.Hour

	// ResetRequestedMessage is returned for every well-formed reset request,
	// whether or not the account exists.
	ResetRequestedMessage = "If an account exists, a reset link has been sent."

	// fallbackDummyHash is a cost-12 bcrypt hash of a throwaway value.
	fallbackDummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
)

type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, name, link string) error
}

type AuthConfig struct {
	ResetTTL        time.Duration
	BcryptCost      int
	FrontendBaseURL string
}

type AuthService struct {
	users      ports.UserRepository
	resets     ports.PasswordResetRepository
	mailer     PasswordResetSender
	jwt        *util.JWTManager
	resetTTL   time.Duration
	bcryptCost int
	resetBase  string
	now        func() time.Time
	dummyHash  string
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

func NewAuthService(users ports.UserRepository, resets ports.PasswordResetRepository, mailer PasswordResetSender, jwt *util.JWTManager, cfg AuthConfig) *AuthService {
	ttl := cfg.ResetTTL
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	cost := cfg.BcryptCost
	if cost <= 0 {
		cost = util.DefaultBcryptCost
	}
	return &AuthService{
		users:      users,
		resets:     resets,
		mailer:     mailer,
		jwt:        jwt,
		resetTTL:   ttl,
		bcryptCost: cost,
		resetBase:  strings.TrimRight(strings.TrimSpace(cfg.FrontendBaseURL), "/") + "/reset-password/",
		now:        time.Now,
		dummyHash:  newDummyHash(cost),
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingFields
	}
	if !util.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyUsed
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := util.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, name, email, hash, domain.DefaultRole)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	metrics.RecordAuthEvent("register", metrics.OutcomeSuccess)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		// Unknown accounts still pay for one bcrypt comparison.
		util.VerifyPassword(s.dummyHash, password)
		metrics.RecordAuthEvent("login", metrics.OutcomeRejected)
		return nil, ErrInvalidCredentials
	}
	if !util.VerifyPassword(user.PasswordHash, password) {
		metrics.RecordAuthEvent("login", metrics.OutcomeRejected)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.Generate(user)
	if err != nil {
		return nil, err
	}
	metrics.RecordAuthEvent("login", metrics.OutcomeSuccess)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// VerifyToken turns a bearer token into the caller's identity.
func (s *AuthService) VerifyToken(token string) (domain.Principal, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return domain.Principal{}, err
	}
	return claims.Principal(), nil
}

// RequestPasswordReset issues a fresh reset token for email when the
// account exists. Unknown accounts are indistinguishable to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !util.ValidateEmail(email) {
		return ErrInvalidEmail
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			metrics.RecordAuthEvent("password_reset_request", metrics.OutcomeRejected)
			return nil
		}
		return err
	}

	if err := s.resets.ConsumeByUser(ctx, user.ID); err != nil {
		return err
	}
	plain, hash, err := util.GenerateResetToken()
	if err != nil {
		return err
	}
	if _, err := s.resets.Create(ctx, user.ID, hash, s.now().Add(s.resetTTL)); err != nil {
		return err
	}
	metrics.RecordAuthEvent("password_reset_request", metrics.OutcomeSuccess)

	if s.mailer == nil {
		log.Printf("password reset: mail disabled, token for user %s not delivered", user.ID)
		return nil
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, s.resetBase+plain); err != nil {
		log.Printf("password reset: mail for user %s failed: %v", user.ID, err)
	}
	return nil
}

func (s *AuthService) ValidateResetToken(ctx context.Context, token string) error {
	_, err := s.activeReset(ctx, token)
	return err
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}
	reset, err := s.activeReset(ctx, token)
	if err != nil {
		return err
	}
	hash, err := util.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.resets.Redeem(ctx, reset.ID, reset.UserID, hash, s.now()); err != nil {
		if isNotFound(err) {
			metrics.RecordAuthEvent("password_reset", metrics.OutcomeRejected)
			return ErrResetTokenInvalid
		}
		return err
	}
	metrics.RecordAuthEvent("password_reset", metrics.OutcomeSuccess)
	return nil
}

func (s *AuthService) activeReset(ctx context.Context, token string) (*domain.PasswordReset, error) {
	token = strings.TrimSpace(token)
	if !util.LooksLikeResetToken(token) {
		return nil, ErrResetTokenInvalid
	}
	reset, err := s.resets.FindActiveByHash(ctx, util.HashResetToken(token), s.now())
	if err != nil {
		if isNotFound(err) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}
	if !reset.Actionable(s.now()) {
		return nil, ErrResetTokenInvalid
	}
	return reset, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ErrPasswordTooWeak
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if !util.VerifyPassword(user.PasswordHash, currentPassword) {
		return ErrPasswordMismatch
	}
	hash, err := util.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	// Outstanding reset links must not outlive a deliberate password change.
	return s.resets.ConsumeByUser(ctx, userID)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin makes sure an admin account exists for email, creating it
// with password or promoting the existing account. It reports whether
// anything changed.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if !util.ValidateEmail(email) {
		return false, ErrInvalidEmail
	}
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == domain.RoleAdmin {
			return false, nil
		}
		if _, err := s.users.UpdateRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
			return false, err
		}
		return true, nil
	case !isNotFound(err):
		return false, err
	}

	if err := util.ValidatePassword(password); err != nil {
		return false, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	hash, err := util.HashPassword(password, s.bcryptCost)
	if err != nil {
		return false, err
	}
	if _, err := s.users.Create(ctx, strings.TrimSpace(name), email, hash, domain.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) PurgeStaleResets(ctx context.Context) (int64, error) {
	return s.resets.PurgeStale(ctx, s.now())
}

// newDummyHash builds the hash unknown-email logins are compared against, at
// the same cost as real accounts.
func newDummyHash(cost int) string {
	hash, err := util.HashPassword(uuid.NewString(), cost)
	if err != nil {
		log.Printf("auth: dummy hash generation failed, using fallback: %v", err)
		return fallbackDummyHash
	}
	return hash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
