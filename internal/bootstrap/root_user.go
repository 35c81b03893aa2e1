package bootstrap

import (
	"context"

	"github.com/pagecraft-io/pagecraft/internal/config"
	"github.com/pagecraft-io/pagecraft/internal/modules/model"
	"github.com/pagecraft-io/pagecraft/internal/pkg/utils/secrets"
	"github.com/pagecraft-io/pagecraft/internal/pkg/utils/tokens"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureRootUserExists creates or realigns the root user when the service
// starts. The root API key comes from config; rotating it there rotates the
// stored credentials on the next boot. When no key is configured a fresh
// one is generated and logged once, so a new deployment is reachable
// without a pre-provisioned secret.
func EnsureRootUserExists(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	pepper := cfg.Auth.SecretPepper
	if pepper == "" || cfg.Auth.RootEmail == "" {
		return nil
	}

	secret, ok := tokens.ParseAPIKey(cfg.Auth.RootAPIKey, cfg.Auth.APIKeyPrefix)
	if !ok || secret == "" {
		generated, err := tokens.NewSecret(24)
		if err != nil {
			return err
		}
		secret = generated
		log.Sugar().Infow("generated root api key, store it now",
			"key", cfg.Auth.APIKeyPrefix+secret)
	}

	lookup := tokens.HMAC256Hex(pepper, secret)
	phc, err := secrets.HashSecret(secret, pepper)
	if err != nil {
		return err
	}

	var root model.User
	err = db.WithContext(ctx).
		Where("email = ?", cfg.Auth.RootEmail).
		First(&root).Error

	switch err {
	case nil:
		updates := map[string]interface{}{
			"api_key_hmac": lookup,
			"api_key_phc":  phc,
			"is_active":    true,
		}
		if uErr := db.WithContext(ctx).Model(&root).Updates(updates).Error; uErr != nil {
			return uErr
		}
		log.Sugar().Infow("root user exists", "user", root.ID)
		return nil

	case gorm.ErrRecordNotFound:
		newU := model.User{
			Email:      cfg.Auth.RootEmail,
			Name:       cfg.Auth.RootName,
			APIKeyHMAC: lookup,
			APIKeyPHC:  phc,
			IsActive:   true,
		}
		if cErr := db.WithContext(ctx).Create(&newU).Error; cErr != nil {
			return cErr
		}
		log.Sugar().Infow("root user created", "user", newU.ID)
		return nil

	default:
		return err
	}
}
