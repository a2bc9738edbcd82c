package nameservice

import (
	"bytes"
	"unicode/utf8"
)

// Label is the fixed 32 byte name stored alongside a registered address. It
// holds raw bytes and is not required to be text.
type Label [MaxLabelSize]byte

// NewLabel zero-pads or truncates value to MaxLabelSize bytes
func NewLabel(value string) Label {
	var label Label
	copy(label[:], value)
	return label
}

// IsValidUTF8 returns whether the label, including any zero padding, is valid
// UTF-8
func (l Label) IsValidUTF8() bool {
	return utf8.Valid(l[:])
}

// String returns the label with trailing zero padding removed
func (l Label) String() string {
	return string(bytes.TrimRight(l[:], "\x00"))
}
