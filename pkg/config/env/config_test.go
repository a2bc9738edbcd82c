package env

import (
	"context"
	"crypto/ed25519"
	"os"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	os.Setenv(env, "default")

	v, err := NewConfig(env).Get(context.Background())
	assert.Equal(t, []byte("default"), v)
	assert.Nil(t, err)

	os.Unsetenv(env)

	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestPublicKeyConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_PUBLIC_KEY"
	defaultValue := ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))

	os.Unsetenv(env)
	assert.Equal(t, defaultValue, NewPublicKeyConfig(env, defaultValue).Get(context.Background()))

	os.Setenv(env, "Gsun7cGFrSUm3N8TEBq7Uu9xz4c9cE4pKdbtETQiSgZX")
	defer os.Unsetenv(env)

	expected, err := base58.Decode("Gsun7cGFrSUm3N8TEBq7Uu9xz4c9cE4pKdbtETQiSgZX")
	require.NoError(t, err)
	assert.EqualValues(t, expected, NewPublicKeyConfig(env, defaultValue).Get(context.Background()))
}
