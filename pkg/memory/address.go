// Package memory implements the auxiliary memory model used by the
// VM-simulation generator family: a simulated address space indexed by
// context, segment, and virtual address, plus a timestamped
// read/write trace.
package memory

import "fmt"

// Address identifies one word of simulated memory.
type Address struct {
	Context int
	Segment int
	Virt    int
}

// String renders a for debug printing.
func (a Address) String() string {
	return fmt.Sprintf("Address{context=%d, segment=%d, virt=%d}", a.Context, a.Segment, a.Virt)
}

// Channel identifies which of the fixed-size set of memory-bus channels
// an Op travels on: exactly one Code channel, plus the general-purpose
// channels. Channel indices are part of the wire format shared with the
// constraint evaluator and must match bit-for-bit: Code -> 0,
// GeneralPurpose(k) -> k+1.
type Channel struct {
	isCode bool
	gp     int
}

// CodeChannel is the single Code channel.
var CodeChannel = Channel{isCode: true}

// GPChannel returns the k-th general-purpose channel. Panics if k is
// negative or >= NumGPChannels, since the channel space is fixed per
// circuit family and an out-of-range channel index is a caller bug, not a
// runtime condition.
func GPChannel(k int, numGPChannels int) Channel {
	if k < 0 || k >= numGPChannels {
		panic(fmt.Sprintf("memory: GP channel %d out of range [0, %d)", k, numGPChannels))
	}
	return Channel{isCode: false, gp: k}
}

// Index returns this channel's wire-format index: Code -> 0,
// GeneralPurpose(k) -> k+1.
func (c Channel) Index() int {
	if c.isCode {
		return 0
	}
	return c.gp + 1
}

// IsCode reports whether c is the Code channel.
func (c Channel) IsCode() bool {
	return c.isCode
}

// String renders c for debug printing.
func (c Channel) String() string {
	if c.isCode {
		return "Code"
	}
	return fmt.Sprintf("GeneralPurpose(%d)", c.gp)
}

// Timestamp computes clock*numChannels + channel.Index(), the total-order
// key shared bit-for-bit with the constraint evaluator. numChannels is
// 1 (Code) plus the number of general-purpose channels.
func Timestamp(clock int, channel Channel, numChannels int) int {
	return clock*numChannels + channel.Index()
}
