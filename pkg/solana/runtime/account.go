package runtime

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// AccountInfo is the view of an account handed to a program for the duration
// of a single invocation.
type AccountInfo struct {
	Key        ed25519.PublicKey
	Owner      ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	Lamports   uint64
	Data       []byte
}

// IsOwnedBy returns whether the account is owned by the provided program
func (a *AccountInfo) IsOwnedBy(program ed25519.PublicKey) bool {
	return bytes.Equal(a.Owner, program)
}

// HasKey returns whether the account's address is key
func (a *AccountInfo) HasKey(key ed25519.PublicKey) bool {
	return bytes.Equal(a.Key, key)
}

func (a *AccountInfo) String() string {
	return fmt.Sprintf(
		"AccountInfo{key=%s,owner=%s,is_signer=%v,is_writable=%v,lamports=%d,data_len=%d}",
		base58.Encode(a.Key),
		base58.Encode(a.Owner),
		a.IsSigner,
		a.IsWritable,
		a.Lamports,
		len(a.Data),
	)
}

type snapshot struct {
	owner    ed25519.PublicKey
	lamports uint64
	data     []byte
}

func (a *AccountInfo) snapshot() snapshot {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	owner := make(ed25519.PublicKey, len(a.Owner))
	copy(owner, a.Owner)
	return snapshot{
		owner:    owner,
		lamports: a.Lamports,
		data:     data,
	}
}

func (a *AccountInfo) restore(s snapshot) {
	a.Owner = make(ed25519.PublicKey, len(s.owner))
	copy(a.Owner, s.owner)
	a.Lamports = s.lamports
	a.Data = make([]byte, len(s.data))
	copy(a.Data, s.data)
}
