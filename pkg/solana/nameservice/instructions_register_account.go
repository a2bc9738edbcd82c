package nameservice

import (
	"crypto/ed25519"

	"github.com/code-payments/name-service/pkg/solana"
)

const RegisterAccountInstructionArgsSize = (32 + // target
	MaxLabelSize) // label

type RegisterAccountInstructionArgs struct {
	Target ed25519.PublicKey
	Label  Label
}

type RegisterAccountInstructionAccounts struct {
	Payment        ed25519.PublicKey
	CounterPointer ed25519.PublicKey
	Counter        ed25519.PublicKey
	Storage        ed25519.PublicKey
}

func NewRegisterAccountInstruction(
	program ed25519.PublicKey,
	accounts *RegisterAccountInstructionAccounts,
	args *RegisterAccountInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: args.Marshal(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Payment,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.CounterPointer,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Counter,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Storage,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

func (obj *RegisterAccountInstructionArgs) Marshal() []byte {
	data := make([]byte, RegisterAccountInstructionArgsSize)

	var offset int
	putKey(data, obj.Target, &offset)
	putLabel(data, obj.Label, &offset)

	return data
}

// Unmarshal decodes the instruction payload, which must be exactly
// RegisterAccountInstructionArgsSize bytes
func (obj *RegisterAccountInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != RegisterAccountInstructionArgsSize {
		return ErrInvalidInstructionLength
	}

	var offset int
	getKey(data, &obj.Target, &offset)
	getLabel(data, &obj.Label, &offset)

	return nil
}
