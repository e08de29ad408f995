package generalize_test

import (
	"context"
	"testing"

	"github.com/fuzzkit/genstage/internal/generalize"
	"github.com/fuzzkit/genstage/internal/slot"
	"github.com/fuzzkit/genstage/internal/testutil"
)

// FuzzRun checks the two invariants spec.md §8 cares about most: the
// generalized output still drives the same novelty set, and it never
// grows past the original's length. The witness byte is itself a fuzz
// argument rather than fixed, so different runs exercise different
// novelty predicates; the candidate bytes are read from the rest of the
// fuzz input through [testutil.ByteStream].
func FuzzRun(f *testing.F) {
	f.Add(byte('A'), []byte("AAAA"))
	f.Add(byte('A'), []byte("xAx"))
	f.Add(byte(')'), []byte("(hello)A"))
	f.Add(byte('A'), []byte("a.b.c.A"))
	f.Add(byte('A'), []byte(""))
	f.Add(byte('A'), []byte("A"))
	f.Add(byte(']'), []byte("[[[A]]]"))
	f.Add(byte('z'), []byte("no witness byte here"))

	f.Fuzz(func(t *testing.T, witnessByte byte, rest []byte) {
		stream := testutil.NewByteStream(rest)
		input := stream.NextBytes(len(rest))

		fn := containsByte(witnessByte)

		// Skip inputs that don't hit the novelty at all: generalizing
		// them is undefined (the baseline probe itself would fail).
		if len(fn(input)) == 0 {
			t.Skip("input does not hit the novelty set")
		}

		probe := newProbe(t, fn)
		p := slot.FromBytes(input)

		out, err := generalize.Run(context.Background(), probe, p, nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		materialized := slot.Materialize(out)
		if len(materialized) > len(input) {
			t.Fatalf("generalized length %d > original length %d", len(materialized), len(input))
		}

		if len(fn(materialized)) == 0 {
			t.Fatalf("generalized output %q lost the novelty set (input was %q, witness %q)", materialized, input, witnessByte)
		}
	})
}

func FuzzTrim_Preserves_Materialization(f *testing.F) {
	f.Add([]byte("abc"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, input []byte) {
		p := slot.FromBytes(input)
		slot.FillGap(p, 0, 0) // no-op, exercises the boundary

		trimmed := slot.Trim(p)
		if string(slot.Materialize(trimmed)) != string(slot.Materialize(p)) {
			t.Fatalf("Trim changed materialization")
		}
	})
}

