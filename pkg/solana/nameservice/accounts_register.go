package nameservice

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const RegisterSize = (32 + // token
	MaxLabelSize) // label

// Register is a committed token-name registration. The layout carries no
// initialization flag, so an all-zero span is the only empty state.
type Register struct {
	Token ed25519.PublicKey
	Label Label
}

func (obj *Register) Marshal() []byte {
	data := make([]byte, RegisterSize)
	obj.MarshalInto(data)
	return data
}

// MarshalInto overwrites data[0:RegisterSize]
func (obj *Register) MarshalInto(data []byte) {
	var offset int

	putKey(data, obj.Token, &offset)
	putLabel(data, obj.Label, &offset)
}

func (obj *Register) Unmarshal(data []byte) error {
	if len(data) < RegisterSize {
		return ErrAccountDataTooSmall
	}

	var offset int

	getKey(data, &obj.Token, &offset)
	getLabel(data, &obj.Label, &offset)

	return nil
}

func (obj *Register) String() string {
	return fmt.Sprintf(
		"Register{token=%s,label=%q}",
		base58.Encode(obj.Token),
		obj.Label.String(),
	)
}
