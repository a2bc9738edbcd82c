package processor

import (
	"context"
	"os"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/solana/nameservice"
	"github.com/code-payments/name-service/pkg/solana/runtime"
	"github.com/code-payments/name-service/pkg/solana/token"
	"github.com/code-payments/name-service/pkg/testutil"
)

func TestWithEnvConfigs(t *testing.T) {
	cfg, err := WithEnvConfigs()().load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, nameservice.DefaultPaymentAddress, cfg.PaymentAddress)
	assert.Equal(t, nameservice.DefaultCounterPointerAddress, cfg.CounterPointerAddress)
	assert.Equal(t, token.ProgramKey, cfg.TokenProgramAddress)
	assert.Equal(t, nameservice.DefaultRegistrationFee, cfg.RegistrationFee)

	payment := testutil.GenerateSolanaKey(t)
	os.Setenv(PaymentAddressConfigEnvName, base58.Encode(payment))
	os.Setenv(RegistrationFeeConfigEnvName, "5000")
	defer func() {
		os.Unsetenv(PaymentAddressConfigEnvName)
		os.Unsetenv(RegistrationFeeConfigEnvName)
	}()

	cfg, err = WithEnvConfigs()().load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, payment, cfg.PaymentAddress)
	assert.EqualValues(t, 5000, cfg.RegistrationFee)
	assert.Equal(t, nameservice.DefaultCounterPointerAddress, cfg.CounterPointerAddress)
}

func TestWithEnvConfigs_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value string
	}{
		{PaymentAddressConfigEnvName, "not-base58-0OIl"},
		{PaymentAddressConfigEnvName, base58.Encode(make([]byte, 31))},
		{CounterPointerAddressConfigEnvName, "not-base58-0OIl"},
		{TokenProgramAddressConfigEnvName, base58.Encode(make([]byte, 33))},
		{RegistrationFeeConfigEnvName, "one sol"},
	} {
		os.Setenv(tc.name, tc.value)

		_, err := WithEnvConfigs()().load(context.Background())
		assert.Error(t, err, tc.name)

		for _, program := range []runtime.Program{
			NewAccountNameProgram(WithEnvConfigs()),
			NewTokenNameProgram(WithEnvConfigs()),
		} {
			err = program.Process(testutil.GenerateSolanaKey(t), nil, nil)
			assert.Equal(t, ErrInvalidConfig, err, tc.name)
		}

		os.Unsetenv(tc.name)
	}
}

func TestWithConfig(t *testing.T) {
	pointer := testutil.GenerateSolanaKey(t)

	cfg, err := WithConfig(Config{CounterPointerAddress: pointer})().load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, nameservice.DefaultPaymentAddress, cfg.PaymentAddress)
	assert.Equal(t, pointer, cfg.CounterPointerAddress)
	assert.Equal(t, nameservice.DefaultRegistrationFee, cfg.RegistrationFee)
}

func TestWithConfig_Invalid(t *testing.T) {
	short := testutil.GenerateSolanaKey(t)[:31]

	for _, cfg := range []Config{
		{PaymentAddress: short},
		{CounterPointerAddress: short},
		{TokenProgramAddress: short},
	} {
		_, err := WithConfig(cfg)().load(context.Background())
		assert.Error(t, err)

		for _, program := range []runtime.Program{
			NewAccountNameProgram(WithConfig(cfg)),
			NewTokenNameProgram(WithConfig(cfg)),
		} {
			err = program.Process(testutil.GenerateSolanaKey(t), nil, nil)
			assert.Equal(t, ErrInvalidConfig, err)
		}
	}
}
