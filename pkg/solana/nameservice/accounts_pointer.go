package nameservice

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	solbinary "github.com/code-payments/name-service/pkg/solana/binary"
)

const (
	PointerSize = (32 + // target
		1) // is_initialized

	PointerFlagOffset = 32
)

// Pointer names the account holding the state it stands in for
type Pointer struct {
	Target        ed25519.PublicKey
	IsInitialized bool
}

// Marshal returns the PointerSize byte encoding of the pointer
func (obj *Pointer) Marshal() []byte {
	data := make([]byte, PointerSize)
	obj.MarshalInto(data)
	return data
}

// MarshalInto overwrites data[0:PointerSize]. data must be at least
// PointerSize bytes.
func (obj *Pointer) MarshalInto(data []byte) {
	var offset int

	putKey(data, obj.Target, &offset)
	solbinary.PutBool(data, obj.IsInitialized, &offset)
}

func (obj *Pointer) Unmarshal(data []byte) error {
	if len(data) < PointerSize {
		return ErrAccountDataTooSmall
	}

	var offset int

	getKey(data, &obj.Target, &offset)
	return getFlag(data, &obj.IsInitialized, &offset)
}

func (obj *Pointer) String() string {
	return fmt.Sprintf(
		"Pointer{target=%s,is_initialized=%v}",
		base58.Encode(obj.Target),
		obj.IsInitialized,
	)
}
