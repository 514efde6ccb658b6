package memory

import (
	"fmt"
	"math/big"
)

// OpKind distinguishes a read from a write.
type OpKind uint8

const (
	// OpRead marks a read operation.
	OpRead OpKind = iota
	// OpWrite marks a write operation.
	OpWrite
)

// String renders k for debug printing.
func (k OpKind) String() string {
	if k == OpWrite {
		return "Write"
	}
	return "Read"
}

// Op is a single timestamped memory operation. Filter distinguishes an
// observed operation (true) from a padding row appended to reach a target
// trace length (false); padding rows still carry a timestamp, address, and
// value but are excluded from semantic replay.
type Op struct {
	Filter    bool
	Timestamp int
	Address   Address
	Kind      OpKind
	Value     *big.Int
}

// NewOp constructs a real (non-padding) Op, computing its timestamp from
// clock and channel per the shared wire format.
func NewOp(channel Channel, clock int, numChannels int, address Address, kind OpKind, value *big.Int) Op {
	return Op{
		Filter:    true,
		Timestamp: Timestamp(clock, channel, numChannels),
		Address:   address,
		Kind:      kind,
		Value:     new(big.Int).Set(value),
	}
}

// PaddingOp constructs a padding row: filter=false, carrying whatever
// timestamp/address/value the caller supplies (typically the last real
// op's, repeated) to pad a trace out to a target length without
// contributing to semantic replay.
func PaddingOp(timestamp int, address Address, value *big.Int) Op {
	return Op{
		Filter:    false,
		Timestamp: timestamp,
		Address:   address,
		Kind:      OpRead,
		Value:     new(big.Int).Set(value),
	}
}

// String renders o for debug printing.
func (o Op) String() string {
	return fmt.Sprintf("Op{filter=%v, ts=%d, addr=%s, kind=%s, value=%s}", o.Filter, o.Timestamp, o.Address, o.Kind, o.Value)
}
