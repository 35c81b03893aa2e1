package service

import (
	"context"
	"time"

	"github.com/pagecraft-io/pagecraft/internal/config"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/modules/repo"
	"github.com/pagecraft-io/pagecraft/internal/pkg/utils/secrets"
	"github.com/pagecraft-io/pagecraft/internal/pkg/utils/tokens"
	"go.uber.org/zap"
)

// UserService resolves API keys to users. Account creation and key issuance
// live outside this server; the one write here is the last-login touch.
type UserService interface {
	Authenticate(ctx context.Context, rawKey string) (*model.User, error)
}

type userService struct {
	users repo.UserRepo
	cfg   *config.Config
	log   *zap.Logger
}

func NewUserService(users repo.UserRepo, cfg *config.Config, log *zap.Logger) UserService {
	return &userService{users: users, cfg: cfg, log: log}
}

func (s *userService) Authenticate(ctx context.Context, rawKey string) (*model.User, error) {
	secret, ok := tokens.ParseAPIKey(rawKey, s.cfg.Auth.APIKeyPrefix)
	if !ok {
		return nil, ErrNotFound
	}

	hmac := tokens.HMAC256Hex(s.cfg.Auth.SecretPepper, secret)
	user, err := s.users.GetActiveByAPIKeyHMAC(ctx, hmac)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	// The HMAC lookup is the fast path; the argon2 check catches a pepper
	// collision and can be disabled where latency matters more.
	if s.cfg.Auth.EnableArgon2Verification && user.APIKeyPHC != "" {
		ok, err := secrets.VerifySecret(secret, s.cfg.Auth.SecretPepper, user.APIKeyPHC)
		if err != nil || !ok {
			return nil, ErrNotFound
		}
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Warn("last login touch failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return user, nil
}
