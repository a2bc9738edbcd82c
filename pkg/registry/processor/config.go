package processor

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/name-service/pkg/config"
	"github.com/code-payments/name-service/pkg/config/env"
	"github.com/code-payments/name-service/pkg/config/memory"
	"github.com/code-payments/name-service/pkg/config/wrapper"
	"github.com/code-payments/name-service/pkg/solana"
	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/token"
)

const (
	envConfigPrefix = "NAME_SERVICE_"

	PaymentAddressConfigEnvName = envConfigPrefix + "PAYMENT_ADDRESS"

	CounterPointerAddressConfigEnvName = envConfigPrefix + "COUNTER_POINTER_ADDRESS"

	TokenProgramAddressConfigEnvName = envConfigPrefix + "TOKEN_PROGRAM_ADDRESS"

	RegistrationFeeConfigEnvName = envConfigPrefix + "REGISTRATION_FEE"
	defaultRegistrationFee       = nameservice.DefaultRegistrationFee
)

var (
	defaultPaymentAddress        = nameservice.DefaultPaymentAddress
	defaultCounterPointerAddress = nameservice.DefaultCounterPointerAddress
	defaultTokenProgramAddress   = token.ProgramKey
)

// Config is the set of well-known addresses and amounts the registry
// programs validate against during a single invocation
type Config struct {
	PaymentAddress        ed25519.PublicKey
	CounterPointerAddress ed25519.PublicKey
	TokenProgramAddress   ed25519.PublicKey
	RegistrationFee       uint64
}

type conf struct {
	paymentAddress        config.PublicKey
	counterPointerAddress config.PublicKey
	tokenProgramAddress   config.PublicKey
	registrationFee       config.Uint64
}

// ErrInvalidConfig is returned by every program when a configured address or
// amount cannot be parsed. Programs never fall back to defaults for a value
// that was set.
var ErrInvalidConfig = solana.NewInstructionError(solana.InstructionErrorInvalidArgument, "invalid registry configuration")

func (c *conf) load(ctx context.Context) (Config, error) {
	paymentAddress, err := c.paymentAddress.GetSafe(ctx)
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid payment address")
	}

	counterPointerAddress, err := c.counterPointerAddress.GetSafe(ctx)
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid counter pointer address")
	}

	tokenProgramAddress, err := c.tokenProgramAddress.GetSafe(ctx)
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid token program address")
	}

	registrationFee, err := c.registrationFee.GetSafe(ctx)
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid registration fee")
	}

	return Config{
		PaymentAddress:        paymentAddress,
		CounterPointerAddress: counterPointerAddress,
		TokenProgramAddress:   tokenProgramAddress,
		RegistrationFee:       registrationFee,
	}, nil
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			paymentAddress:        env.NewPublicKeyConfig(PaymentAddressConfigEnvName, defaultPaymentAddress),
			counterPointerAddress: env.NewPublicKeyConfig(CounterPointerAddressConfigEnvName, defaultCounterPointerAddress),
			tokenProgramAddress:   env.NewPublicKeyConfig(TokenProgramAddressConfigEnvName, defaultTokenProgramAddress),
			registrationFee:       env.NewUint64Config(RegistrationFeeConfigEnvName, defaultRegistrationFee),
		}
	}
}

// WithConfig returns a fixed configuration. Unset fields fall back to their
// defaults.
func WithConfig(cfg Config) ConfigProvider {
	return func() *conf {
		c := &conf{
			paymentAddress:        wrapper.NewPublicKeyConfig(config.NoopConfig, defaultPaymentAddress),
			counterPointerAddress: wrapper.NewPublicKeyConfig(config.NoopConfig, defaultCounterPointerAddress),
			tokenProgramAddress:   wrapper.NewPublicKeyConfig(config.NoopConfig, defaultTokenProgramAddress),
			registrationFee:       wrapper.NewUint64Config(config.NoopConfig, defaultRegistrationFee),
		}

		if len(cfg.PaymentAddress) > 0 {
			c.paymentAddress = wrapper.NewPublicKeyConfig(memory.NewConfig(cfg.PaymentAddress), defaultPaymentAddress)
		}
		if len(cfg.CounterPointerAddress) > 0 {
			c.counterPointerAddress = wrapper.NewPublicKeyConfig(memory.NewConfig(cfg.CounterPointerAddress), defaultCounterPointerAddress)
		}
		if len(cfg.TokenProgramAddress) > 0 {
			c.tokenProgramAddress = wrapper.NewPublicKeyConfig(memory.NewConfig(cfg.TokenProgramAddress), defaultTokenProgramAddress)
		}
		if cfg.RegistrationFee > 0 {
			c.registrationFee = wrapper.NewUint64Config(memory.NewConfig(cfg.RegistrationFee), defaultRegistrationFee)
		}

		return c
	}
}
