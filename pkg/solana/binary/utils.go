// Package binary provides fixed-width little-endian helpers for account and
// instruction layouts. Every helper reads or writes at src[*offset:] and
// advances offset by the size of the field.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"
)

// ErrInvalidBool indicates a boolean field held a byte other than 0 or 1
var ErrInvalidBool = errors.New("invalid bool value")

// PutKey32 writes the full 32 byte span. Bytes a short key does not cover are
// zeroed.
func PutKey32(dst []byte, src ed25519.PublicKey, offset *int) {
	span := dst[*offset : *offset+ed25519.PublicKeySize]
	n := copy(span, src)
	for i := n; i < len(span); i++ {
		span[i] = 0
	}
	*offset += ed25519.PublicKeySize
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

func PutBytes32(dst []byte, src [32]byte, offset *int) {
	copy(dst[*offset:*offset+32], src[:])
	*offset += 32
}

func GetBytes32(src []byte, dst *[32]byte, offset *int) {
	copy(dst[:], src[*offset:*offset+32])
	*offset += 32
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func PutBool(dst []byte, v bool, offset *int) {
	if v {
		dst[*offset] = 1
	} else {
		dst[*offset] = 0
	}
	*offset += 1
}

// GetBool decodes a strict boolean. Only 0 and 1 are accepted.
func GetBool(src []byte, dst *bool, offset *int) error {
	switch src[*offset] {
	case 0:
		*dst = false
	case 1:
		*dst = true
	default:
		return ErrInvalidBool
	}
	*offset += 1
	return nil
}
