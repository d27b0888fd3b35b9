package auth

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/polkiloo/storefront/internal/config"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := newPasswordHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}

func TestNewTokenStrategy(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{JWTSecret: "top-secret", TokenTTL: 3 * time.Hour}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != 3*time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}

func TestNewTokenStrategyDefaultTTL(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{JWTSecret: "s"}})
	if strategy.(*HMACStrategy).ttl != defaultTTL {
		t.Fatalf("expected default ttl")
	}
}

func TestNewTokenStrategyWarnsOnShortSecret(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	newTokenStrategy(strategyParams{Config: &config.Config{JWTSecret: "short"}, Logger: zap.New(core)})
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}

	newTokenStrategy(strategyParams{Config: &config.Config{JWTSecret: "a-long-enough-signing-secret"}, Logger: zap.New(core)})
	if logs.Len() != 1 {
		t.Fatalf("expected no warning for long secret, got %d entries", logs.Len())
	}
}
