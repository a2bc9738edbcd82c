package nameservice

import (
	"fmt"
	"math"

	solbinary "github.com/code-payments/name-service/pkg/solana/binary"
)

const CounterSize = 8 // index

// Counter is the sequence backing registration indices
type Counter struct {
	Index uint64
}

func (obj *Counter) Marshal() []byte {
	data := make([]byte, CounterSize)
	obj.MarshalInto(data)
	return data
}

// MarshalInto overwrites data[0:CounterSize]
func (obj *Counter) MarshalInto(data []byte) {
	var offset int
	solbinary.PutUint64(data, obj.Index, &offset)
}

func (obj *Counter) Unmarshal(data []byte) error {
	if len(data) < CounterSize {
		return ErrAccountDataTooSmall
	}

	var offset int
	solbinary.GetUint64(data, &obj.Index, &offset)
	return nil
}

// Increment advances the counter by one and returns the new index
func (obj *Counter) Increment() (uint64, error) {
	if obj.Index == math.MaxUint64 {
		return 0, ErrCounterOverflow
	}
	obj.Index++
	return obj.Index, nil
}

func (obj *Counter) String() string {
	return fmt.Sprintf("Counter{index=%d}", obj.Index)
}
