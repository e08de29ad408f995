// Package slot implements the mutable payload representation used by the
// generalization stage: an ordered sequence of slots, each either a kept
// byte or a gap proven deletable.
package slot

// Kind distinguishes a kept byte from a proven-deletable gap.
type Kind uint8

const (
	// Byte marks a slot that still carries a concrete byte value.
	Byte Kind = iota
	// Gap marks a slot whose byte has been proven irrelevant.
	Gap
)

// Slot is a single position in a Payload: either Byte(b) or Gap.
type Slot struct {
	Kind  Kind
	Value byte // meaningful only when Kind == Byte
}

// Payload is the ordered sequence of slots under reduction.
type Payload []Slot

// FromBytes builds the initial payload from a concrete byte string, the
// starting point of every generalization run (spec.md §3, P at i=0).
func FromBytes(b []byte) Payload {
	p := make(Payload, len(b))
	for i, v := range b {
		p[i] = Slot{Kind: Byte, Value: v}
	}

	return p
}

// Materialize produces the concrete byte string: Byte slots in order,
// Gap slots skipped. This is invariant P-1's monotonically shrinking
// witness and the only view of P the target ever sees.
func Materialize(p Payload) []byte {
	out := make([]byte, 0, len(p))

	for _, s := range p {
		if s.Kind == Byte {
			out = append(out, s.Value)
		}
	}

	return out
}

// MaterializeRange materializes p with the half-open range [start, end)
// excluded, without mutating p. Used by the range-deletion engine to build
// a candidate before committing the deletion.
func MaterializeRange(p Payload, start, end int) []byte {
	out := make([]byte, 0, len(p))

	for i, s := range p {
		if i >= start && i < end {
			continue
		}

		if s.Kind == Byte {
			out = append(out, s.Value)
		}
	}

	return out
}

// Clone returns an independent copy of p.
func Clone(p Payload) Payload {
	out := make(Payload, len(p))
	copy(out, p)

	return out
}

// FillGap overwrites p[start:end] with Gap slots in place.
func FillGap(p Payload, start, end int) {
	for i := start; i < end; i++ {
		p[i] = Slot{Kind: Gap}
	}
}

// At reports whether slot i holds the given concrete byte value. A Gap
// slot never matches any value.
func (p Payload) At(i int, v byte) bool {
	return i < len(p) && p[i].Kind == Byte && p[i].Value == v
}
