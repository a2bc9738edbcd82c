package token

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	solbinary "github.com/code-payments/name-service/pkg/solana/binary"
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L36
const MintSize = 82

// MintAuthorityOffset is the offset of the mint authority key inside a Mint
// account. The 4 bytes before it are the COption tag.
const MintAuthorityOffset = optionSize

const optionSize = 4

var ErrInvalidMintData = errors.New("invalid mint account data")

type Mint struct {
	// Optional authority used to mint new tokens
	MintAuthority ed25519.PublicKey
	// Total supply of tokens
	Supply uint64
	// Number of base 10 digits to the right of the decimal place
	Decimals uint8
	// Is true if this structure has been initialized
	IsInitialized bool
	// Optional authority to freeze token accounts
	FreezeAuthority ed25519.PublicKey
}

func (m *Mint) Marshal() []byte {
	b := make([]byte, MintSize)

	var offset int
	putOptionalKey(b, m.MintAuthority, &offset)
	solbinary.PutUint64(b, m.Supply, &offset)
	b[offset] = m.Decimals
	offset++
	solbinary.PutBool(b, m.IsInitialized, &offset)
	putOptionalKey(b, m.FreezeAuthority, &offset)

	return b
}

func (m *Mint) Unmarshal(b []byte) error {
	if len(b) != MintSize {
		return ErrInvalidMintData
	}

	var offset int
	if err := getOptionalKey(b, &m.MintAuthority, &offset); err != nil {
		return err
	}
	solbinary.GetUint64(b, &m.Supply, &offset)
	m.Decimals = b[offset]
	offset++
	if err := solbinary.GetBool(b, &m.IsInitialized, &offset); err != nil {
		return ErrInvalidMintData
	}
	return getOptionalKey(b, &m.FreezeAuthority, &offset)
}

// GetMintAuthorityBytes returns the raw mint authority bytes of a Mint account
// without interpreting the option tag.
func GetMintAuthorityBytes(data []byte) ([]byte, error) {
	if len(data) < MintAuthorityOffset+ed25519.PublicKeySize {
		return nil, ErrInvalidMintData
	}
	return data[MintAuthorityOffset : MintAuthorityOffset+ed25519.PublicKeySize], nil
}

func putOptionalKey(dst []byte, key ed25519.PublicKey, offset *int) {
	if len(key) > 0 {
		binary.LittleEndian.PutUint32(dst[*offset:], 1)
		copy(dst[*offset+optionSize:], key)
	}
	*offset += optionSize + ed25519.PublicKeySize
}

func getOptionalKey(src []byte, dst *ed25519.PublicKey, offset *int) error {
	switch binary.LittleEndian.Uint32(src[*offset:]) {
	case 0:
		*dst = nil
	case 1:
		*dst = make([]byte, ed25519.PublicKeySize)
		copy(*dst, src[*offset+optionSize:])
	default:
		return ErrInvalidMintData
	}
	*offset += optionSize + ed25519.PublicKeySize
	return nil
}
