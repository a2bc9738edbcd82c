package system

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/solana"
)

func TestCreateAccount(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := CreateAccount(keys[0], keys[1], keys[2], 12345, 67890)

	command := make([]byte, 4)
	lamports := make([]byte, 8)
	binary.LittleEndian.PutUint64(lamports, 12345)
	size := make([]byte, 8)
	binary.LittleEndian.PutUint64(size, 67890)

	assert.Equal(t, command, instruction.Data[0:4])
	assert.Equal(t, lamports, instruction.Data[4:12])
	assert.Equal(t, size, instruction.Data[12:20])
	assert.Equal(t, []byte(keys[2]), instruction.Data[20:52])
	assert.EqualValues(t, ProgramKey, instruction.Program)

	require.Len(t, instruction.Accounts, 2)
	for i := 0; i < 2; i++ {
		assert.EqualValues(t, keys[i], instruction.Accounts[i].PublicKey)
		assert.True(t, instruction.Accounts[i].IsSigner)
		assert.True(t, instruction.Accounts[i].IsWritable)
	}

	args, err := DecodeCreateAccountArgs(instruction.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 12345, args.Lamports)
	assert.EqualValues(t, 67890, args.Size)
	assert.Equal(t, keys[2], args.Owner)
}

func TestTransfer(t *testing.T) {
	keys := generateKeys(t, 2)

	instruction := Transfer(keys[0], keys[1], 42)

	command := make([]byte, 4)
	binary.LittleEndian.PutUint32(command, uint32(CommandTransfer))
	assert.Equal(t, command, instruction.Data[0:4])

	require.Len(t, instruction.Accounts, 2)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)

	args, err := DecodeTransferArgs(instruction.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 42, args.Lamports)
}

func TestDecode_Invalid(t *testing.T) {
	keys := generateKeys(t, 3)

	_, err := GetCommand([]byte{0, 0, 0})
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	transfer := Transfer(keys[0], keys[1], 1)
	_, err = DecodeCreateAccountArgs(transfer.Data)
	assert.Error(t, err)

	create := CreateAccount(keys[0], keys[1], keys[2], 1, 1)
	_, err = DecodeTransferArgs(create.Data)
	assert.Error(t, err)

	binary.LittleEndian.PutUint32(create.Data, uint32(CommandAssign))
	_, err = DecodeCreateAccountArgs(create.Data)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}

	return keys
}
