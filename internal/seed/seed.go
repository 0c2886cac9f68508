package seed

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/auth/password"
	"github.com/raizsolar/backoffice/internal/config"
	operatordomain "github.com/raizsolar/backoffice/internal/operator/domain"
)

var Module = fx.Module("seed",
	fx.Invoke(Run),
)

// Run creates the first operator account on an empty database so the
// back office is reachable after a fresh deploy.
func Run(db *gorm.DB, cfg config.Config, genID *snowflake.Node, log *zap.Logger) error {
	if !cfg.BootstrapOperator {
		return nil
	}

	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&operatordomain.Operator{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plaintext := cfg.BootstrapOperatorPassword
	generated := false
	if plaintext == "" {
		raw := make([]byte, 18)
		if _, err := rand.Read(raw); err != nil {
			return err
		}
		plaintext = base64.RawURLEncoding.EncodeToString(raw)
		generated = true
	}

	encoded, err := password.Hash(plaintext)
	if err != nil {
		return err
	}

	operator := operatordomain.Operator{
		ID:       genID.Generate(),
		Name:     "Administrador",
		Email:    cfg.BootstrapOperatorEmail,
		Password: encoded,
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&operator).Error; err != nil {
		return err
	}

	fields := []zap.Field{zap.String("email", operator.Email)}
	if generated {
		// Printed once; rotate it after first login.
		fields = append(fields, zap.String("password", plaintext))
	}
	log.Info("bootstrap operator created", fields...)
	return nil
}
