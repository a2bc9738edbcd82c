package nameservice

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record interface {
	MarshalInto([]byte)
	Unmarshal([]byte) error
}

func TestRecords_RoundTrip(t *testing.T) {
	target := newTestKey(t)

	for _, tc := range []struct {
		name string
		size int
		in   record
		out  record
	}{
		{"pointer", PointerSize, &Pointer{Target: target, IsInitialized: true}, &Pointer{}},
		{"counter", CounterSize, &Counter{Index: 0x0102030405060708}, &Counter{}},
		{"account record", AccountRecordSize, &AccountRecord{Target: target, Label: NewLabel("alice"), IsInitialized: true, Index: 42}, &AccountRecord{}},
		{"register", RegisterSize, &Register{Token: target, Label: NewLabel("some token")}, &Register{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Bytes outside the record's span are never touched
			buffer := bytes.Repeat([]byte{0xaa}, tc.size+16)
			tc.in.MarshalInto(buffer)
			assert.Equal(t, bytes.Repeat([]byte{0xaa}, 16), buffer[tc.size:])

			require.NoError(t, tc.out.Unmarshal(buffer))
			assert.Equal(t, tc.in, tc.out)

			assert.Equal(t, ErrAccountDataTooSmall, tc.out.Unmarshal(buffer[:tc.size-1]))
		})
	}
}

func TestCounter_Layout(t *testing.T) {
	counter := &Counter{Index: 1}
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, counter.Marshal())

	index, err := counter.Increment()
	require.NoError(t, err)
	assert.EqualValues(t, 2, index)

	counter.Index = ^uint64(0)
	_, err = counter.Increment()
	assert.Equal(t, ErrCounterOverflow, err)
	assert.Equal(t, ^uint64(0), counter.Index)
}

func TestAccountRecord_Layout(t *testing.T) {
	target := newTestKey(t)
	record := &AccountRecord{
		Target:        target,
		Label:         NewLabel("name that we want to register 12"),
		IsInitialized: true,
		Index:         258,
	}

	data := record.Marshal()
	require.Len(t, data, AccountRecordSize)
	assert.EqualValues(t, target, data[0:32])
	assert.Equal(t, []byte("name that we want to register 12"), data[32:64])
	assert.EqualValues(t, 1, data[AccountRecordFlagOffset])
	assert.Equal(t, []byte{2, 1, 0, 0, 0, 0, 0, 0}, data[65:73])
}

func TestFlags_Strict(t *testing.T) {
	pointer := (&Pointer{Target: newTestKey(t)}).Marshal()
	pointer[PointerFlagOffset] = 2
	assert.Equal(t, ErrInvalidFlag, (&Pointer{}).Unmarshal(pointer))

	record := (&AccountRecord{Target: newTestKey(t)}).Marshal()
	record[AccountRecordFlagOffset] = 0xff
	assert.Equal(t, ErrInvalidFlag, (&AccountRecord{}).Unmarshal(record))
	assert.Equal(t, ErrorClassDecode, ClassOf(ErrInvalidFlag))
}

func TestRegister_KnownEncoding(t *testing.T) {
	token, err := base58.Decode("4NGtJoZ8wy7mwtzWi8JByPMWbTAQHicHKAfcCbsx1yra")
	require.NoError(t, err)

	data := append(append([]byte{}, token...), []byte("some super random token name xxx")...)

	var register Register
	require.NoError(t, register.Unmarshal(data))
	assert.EqualValues(t, token, register.Token)
	assert.Equal(t, "some super random token name xxx", register.Label.String())
	assert.Equal(t, data, register.Marshal())
}

func TestLabel(t *testing.T) {
	label := NewLabel("short")
	assert.Equal(t, "short", label.String())
	assert.True(t, label.IsValidUTF8())
	assert.EqualValues(t, 0, label[5])

	long := NewLabel("this label is much longer than thirty two bytes")
	assert.Equal(t, "this label is much longer than t", long.String())

	var invalid Label
	invalid[0] = 0xff
	assert.False(t, invalid.IsValidUTF8())
}

func TestIsZeroed(t *testing.T) {
	assert.True(t, IsZeroed(nil))
	assert.True(t, IsZeroed(make([]byte, RegisterSize)))
	data := make([]byte, RegisterSize)
	data[63] = 1
	assert.False(t, IsZeroed(data))
}

func TestProgramError(t *testing.T) {
	assert.Equal(t, "InsufficientFunds: insufficient funds in storage account", ErrInsufficientFunds.Error())
	assert.Equal(t, ErrorClassResource, ClassOf(ErrInsufficientFunds))
	assert.Equal(t, ErrorClassIdentity, ClassOf(ErrInvalidPaymentAccount))
	assert.Equal(t, ErrorClassStatePrecondition, ClassOf(ErrSlotNotEmpty))
	assert.Equal(t, ErrorClassUnknown, ClassOf(errors.New("other")))
	assert.Equal(t, "state_precondition", ErrorClassStatePrecondition.String())
}

func newTestKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}
