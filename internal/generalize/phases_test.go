package generalize_test

import (
	"context"
	"testing"
	"time"

	"github.com/fuzzkit/genstage/internal/coverage"
	"github.com/fuzzkit/genstage/internal/executor"
	"github.com/fuzzkit/genstage/internal/generalize"
	"github.com/fuzzkit/genstage/internal/slot"
)

// containsByte treats novelty index 0 as set whenever candidate
// contains want, mirroring the stub scenarios in spec.md §8.
func containsByte(want byte) executor.CoverageFunc {
	return func(candidate []byte) map[int]struct{} {
		for _, b := range candidate {
			if b == want {
				return map[int]struct{}{0: {}}
			}
		}

		return nil
	}
}

func newProbe(t *testing.T, fn executor.CoverageFunc) *generalize.Probe {
	t.Helper()

	ex := executor.NewStubExecutor("cov", fn)

	return &generalize.Probe{
		Executor:     ex,
		State:        executor.NewPerfState(),
		ObserverName: "cov",
		Novelties:    coverage.NoveltySet{0},
	}
}

func TestStride_Collapses_Repeated_Byte_To_Minimal_Witness(t *testing.T) {
	t.Parallel()

	probe := newProbe(t, containsByte('A'))
	p := slot.FromBytes([]byte("AAAA"))

	out, err := generalize.Stride(context.Background(), probe, p, 0)
	if err != nil {
		t.Fatalf("Stride: %v", err)
	}

	if got := string(slot.Materialize(out)); got != "A" {
		t.Fatalf("Materialize = %q, want %q", got, "A")
	}
}

func TestStride_Drops_Unrelated_Bytes_Around_Witness(t *testing.T) {
	t.Parallel()

	probe := newProbe(t, containsByte('A'))
	p := slot.FromBytes([]byte("xAx"))

	out, err := generalize.Stride(context.Background(), probe, p, 0)
	if err != nil {
		t.Fatalf("Stride: %v", err)
	}

	if got := string(slot.Materialize(out)); got != "A" {
		t.Fatalf("Materialize = %q, want %q", got, "A")
	}
}

func TestSplit_Deletes_Token_Up_To_And_Including_Delimiter(t *testing.T) {
	t.Parallel()

	probe := newProbe(t, containsByte('A'))
	p := slot.FromBytes([]byte("a.b.c.A"))

	out, err := generalize.Split(context.Background(), probe, p, '.')
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if got := string(slot.Materialize(out)); got != "A" {
		t.Fatalf("Materialize = %q, want %q", got, "A")
	}
}

func TestBrackets_Keeps_Closing_Byte_Asymmetrically(t *testing.T) {
	t.Parallel()

	probe := newProbe(t, containsByte('A'))
	p := slot.FromBytes([]byte("(hello)A"))

	out, err := generalize.Brackets(context.Background(), probe, p, '(', ')')
	if err != nil {
		t.Fatalf("Brackets: %v", err)
	}

	if got := string(slot.Materialize(out)); got != ")A" {
		t.Fatalf("Materialize = %q, want %q", got, ")A")
	}
}

// TestBrackets_Terminates_When_No_Candidate_For_An_Opener_Ever_Succeeds
// exercises the case where the novelty requires a byte inside the
// bracketed region, so every candidate deletion for that opener is
// rejected. The outer scan must still advance past the opener instead
// of retrying it forever.
func TestBrackets_Terminates_When_No_Candidate_For_An_Opener_Ever_Succeeds(t *testing.T) {
	t.Parallel()

	// Coverage requires the 'X' inside the parens to survive.
	probe := newProbe(t, containsByte('X'))
	p := slot.FromBytes([]byte("(X)A"))

	done := make(chan struct{})

	var out slot.Payload

	var err error

	go func() {
		out, err = generalize.Brackets(context.Background(), probe, p, '(', ')')
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Brackets did not terminate when no candidate could succeed")
	}

	if err != nil {
		t.Fatalf("Brackets: %v", err)
	}

	if got := string(slot.Materialize(out)); got != "(X)A" {
		t.Fatalf("Materialize = %q, want %q (no deletion should have been accepted)", got, "(X)A")
	}
}
