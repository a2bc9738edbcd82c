package nameservice

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

const (
	// DefaultRegistrationFee is the number of lamports moved from a storage
	// account to the payment account on every paid registration.
	DefaultRegistrationFee uint64 = 1_000_000_000

	MaxLabelSize = 32
)

var (
	DefaultPaymentAddress        = ed25519.PublicKey(mustBase58Decode("Gsun7cGFrSUm3N8TEBq7Uu9xz4c9cE4pKdbtETQiSgZX"))
	DefaultCounterPointerAddress = ed25519.PublicKey(mustBase58Decode("2Q8AV9MbnKYoVR1ttvmsDUxrNZUKuaDEEr3woFQToTYA"))
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
