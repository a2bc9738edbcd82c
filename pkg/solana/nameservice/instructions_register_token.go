package nameservice

import (
	"crypto/ed25519"
	"unicode/utf8"

	"github.com/code-payments/name-service/pkg/solana"
)

const RegisterTokenInstructionArgsSize = MaxLabelSize

type RegisterTokenInstructionArgs struct {
	Label Label
}

type RegisterTokenInstructionAccounts struct {
	Payment ed25519.PublicKey
	Token   ed25519.PublicKey
	Minter  ed25519.PublicKey
	Storage ed25519.PublicKey
}

func NewRegisterTokenInstruction(
	program ed25519.PublicKey,
	accounts *RegisterTokenInstructionAccounts,
	args *RegisterTokenInstructionArgs,
) solana.Instruction {
	data := make([]byte, RegisterTokenInstructionArgsSize)

	var offset int
	putLabel(data, args.Label, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Payment,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Token,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Minter,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Storage,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

// Unmarshal decodes a token label payload. The payload must be UTF-8 text of
// exactly RegisterTokenInstructionArgsSize bytes.
func (obj *RegisterTokenInstructionArgs) Unmarshal(data []byte) error {
	if !utf8.Valid(data) {
		return ErrInvalidLabel
	}
	if len(data) > MaxLabelSize {
		return ErrLabelTooLong
	}
	if len(data) != RegisterTokenInstructionArgsSize {
		return ErrInvalidInstructionLength
	}

	var offset int
	getLabel(data, &obj.Label, &offset)

	return nil
}
