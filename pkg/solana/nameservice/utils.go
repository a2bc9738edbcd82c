package nameservice

import (
	"crypto/ed25519"
	"errors"

	solbinary "github.com/code-payments/name-service/pkg/solana/binary"
)

func putLabel(dst []byte, v Label, offset *int) {
	solbinary.PutBytes32(dst, v, offset)
}
func getLabel(src []byte, dst *Label, offset *int) {
	solbinary.GetBytes32(src, (*[32]byte)(dst), offset)
}

func putKey(dst []byte, v ed25519.PublicKey, offset *int) {
	solbinary.PutKey32(dst, v, offset)
}
func getKey(src []byte, dst *ed25519.PublicKey, offset *int) {
	solbinary.GetKey32(src, dst, offset)
}

func getFlag(src []byte, dst *bool, offset *int) error {
	err := solbinary.GetBool(src, dst, offset)
	if errors.Is(err, solbinary.ErrInvalidBool) {
		return ErrInvalidFlag
	}
	return err
}

// IsZeroed returns whether every byte of data is zero
func IsZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
