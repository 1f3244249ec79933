package admin

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"oasis/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminRole is the role claim carried by admin tokens.
const AdminRole = "admin"

type AdminService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// DefaultAdminService authenticates the single configured administrator.
type DefaultAdminService struct {
	Email        string
	PasswordHash string
	Secret       []byte
	TokenTTL     time.Duration
	Logger       *zap.Logger
}

func NewDefaultAdminService(email, passwordHash string, secret []byte, logger *zap.Logger) *DefaultAdminService {
	return &DefaultAdminService{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Secret:       secret,
		TokenTTL:     12 * time.Hour,
		Logger:       logger,
	}
}

// Login checks the credentials and returns a signed admin token.
func (s *DefaultAdminService) Login(_ context.Context, email, password string) (string, error) {
	if s.Email == "" || s.PasswordHash == "" {
		s.Logger.Warn("admin login attempted but no admin credentials are configured")
		return "", utils.ErrUnauthorized
	}
	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(s.Email)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
	if !emailOK || !passOK {
		s.Logger.Info("admin login failed", zap.String("email", given))
		return "", utils.ErrUnauthorized
	}
	return utils.GenerateToken(s.Secret, s.Email, AdminRole, s.TokenTTL)
}
