package nameservice

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	solbinary "github.com/code-payments/name-service/pkg/solana/binary"
)

const (
	AccountRecordSize = (32 + // target
		MaxLabelSize + // label
		1 + // is_initialized
		8) // index

	AccountRecordFlagOffset = 32 + MaxLabelSize
)

// AccountRecord is a committed account-name registration
type AccountRecord struct {
	Target        ed25519.PublicKey
	Label         Label
	IsInitialized bool
	Index         uint64
}

func (obj *AccountRecord) Marshal() []byte {
	data := make([]byte, AccountRecordSize)
	obj.MarshalInto(data)
	return data
}

// MarshalInto overwrites data[0:AccountRecordSize]
func (obj *AccountRecord) MarshalInto(data []byte) {
	var offset int

	putKey(data, obj.Target, &offset)
	putLabel(data, obj.Label, &offset)
	solbinary.PutBool(data, obj.IsInitialized, &offset)
	solbinary.PutUint64(data, obj.Index, &offset)
}

func (obj *AccountRecord) Unmarshal(data []byte) error {
	if len(data) < AccountRecordSize {
		return ErrAccountDataTooSmall
	}

	var offset int

	getKey(data, &obj.Target, &offset)
	getLabel(data, &obj.Label, &offset)
	if err := getFlag(data, &obj.IsInitialized, &offset); err != nil {
		return err
	}
	solbinary.GetUint64(data, &obj.Index, &offset)

	return nil
}

func (obj *AccountRecord) String() string {
	return fmt.Sprintf(
		"AccountRecord{target=%s,label=%q,is_initialized=%v,index=%d}",
		base58.Encode(obj.Target),
		obj.Label.String(),
		obj.IsInitialized,
		obj.Index,
	)
}
