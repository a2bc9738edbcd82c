package bank

import (
	"context"

	"github.com/code-payments/name-service/pkg/config"
	"github.com/code-payments/name-service/pkg/config/env"
	"github.com/code-payments/name-service/pkg/config/memory"
	"github.com/code-payments/name-service/pkg/config/wrapper"
)

const (
	envConfigPrefix = "BANK_"

	LockStripesConfigEnvName = envConfigPrefix + "LOCK_STRIPES"
	defaultLockStripes       = 1024

	MaxSaveAttemptsConfigEnvName = envConfigPrefix + "MAX_SAVE_ATTEMPTS"
	defaultMaxSaveAttempts       = 5
)

type conf struct {
	lockStripes     config.Uint64
	maxSaveAttempts config.Uint64
}

// lockStripeCount never returns zero, since a lock without stripes cannot
// map any key
func (c *conf) lockStripeCount(ctx context.Context) uint {
	stripes := c.lockStripes.Get(ctx)
	if stripes == 0 {
		return defaultLockStripes
	}
	return uint(stripes)
}

// saveAttempts never returns zero, so every instruction is attempted at least
// once
func (c *conf) saveAttempts(ctx context.Context) uint {
	attempts := c.maxSaveAttempts.Get(ctx)
	if attempts == 0 {
		return 1
	}
	return uint(attempts)
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			lockStripes:     env.NewUint64Config(LockStripesConfigEnvName, defaultLockStripes),
			maxSaveAttempts: env.NewUint64Config(MaxSaveAttemptsConfigEnvName, defaultMaxSaveAttempts),
		}
	}
}

type testOverrides struct {
	lockStripes     uint64
	maxSaveAttempts uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		c := &conf{
			lockStripes:     wrapper.NewUint64Config(config.NoopConfig, defaultLockStripes),
			maxSaveAttempts: wrapper.NewUint64Config(config.NoopConfig, defaultMaxSaveAttempts),
		}

		if overrides.lockStripes > 0 {
			c.lockStripes = wrapper.NewUint64Config(memory.NewConfig(overrides.lockStripes), defaultLockStripes)
		}
		if overrides.maxSaveAttempts > 0 {
			c.maxSaveAttempts = wrapper.NewUint64Config(memory.NewConfig(overrides.maxSaveAttempts), defaultMaxSaveAttempts)
		}

		return c
	}
}
