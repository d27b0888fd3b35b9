package auth

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/polkiloo/storefront/internal/config"
)

// minSecretLength is the shortest signing secret accepted without a warning.
const minSecretLength = 16

// Module provides the password hasher and the session token strategy.
var Module = fx.Provide(newPasswordHasher, newTokenStrategy)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(bcrypt.DefaultCost)
}

type strategyParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger `optional:"true"`
}

func newTokenStrategy(p strategyParams) Strategy {
	if len(p.Config.JWTSecret) < minSecretLength && p.Logger != nil {
		p.Logger.Warn("token signing secret is short", zap.Int("min_length", minSecretLength))
	}
	return NewHMACStrategy(p.Config.JWTSecret, Options{TTL: p.Config.TokenTTL})
}
