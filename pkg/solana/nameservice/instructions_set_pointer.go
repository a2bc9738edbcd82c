package nameservice

import (
	"crypto/ed25519"

	"github.com/code-payments/name-service/pkg/solana"
)

const SetPointerInstructionArgsSize = 32 // target

type SetPointerInstructionArgs struct {
	Target ed25519.PublicKey
}

type SetPointerInstructionAccounts struct {
	Pointer ed25519.PublicKey
}

func NewSetPointerInstruction(
	program ed25519.PublicKey,
	accounts *SetPointerInstructionAccounts,
	args *SetPointerInstructionArgs,
) solana.Instruction {
	data := make([]byte, SetPointerInstructionArgsSize)

	var offset int
	putKey(data, args.Target, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Pointer,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

// Unmarshal decodes a raw 32 byte address payload
func (obj *SetPointerInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != SetPointerInstructionArgsSize {
		return ErrInvalidInstructionLength
	}

	var offset int
	getKey(data, &obj.Target, &offset)

	return nil
}
