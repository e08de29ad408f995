package generalize_test

import (
	"context"
	"testing"

	"github.com/fuzzkit/genstage/internal/generalize"
	"github.com/fuzzkit/genstage/internal/slot"
)

func TestSchedule_Has_Eighteen_Phases_In_Fixed_Order(t *testing.T) {
	t.Parallel()

	if len(generalize.Schedule) != 18 {
		t.Fatalf("len(Schedule) = %d, want 18", len(generalize.Schedule))
	}

	strides, splits, brackets := 0, 0, 0

	for _, ph := range generalize.Schedule {
		switch ph.Kind {
		case generalize.KindStride:
			strides++
		case generalize.KindSplit:
			splits++
		case generalize.KindBrackets:
			brackets++
		}
	}

	if strides != 5 || splits != 7 || brackets != 6 {
		t.Fatalf("got strides=%d splits=%d brackets=%d, want 5/7/6", strides, splits, brackets)
	}

	// Order matters: strides before splits before brackets.
	seenSplit, seenBracket := false, false
	for i, ph := range generalize.Schedule {
		switch ph.Kind {
		case generalize.KindStride:
			if seenSplit || seenBracket {
				t.Fatalf("phase %d: stride appears after split/brackets", i)
			}
		case generalize.KindSplit:
			seenSplit = true
			if seenBracket {
				t.Fatalf("phase %d: split appears after brackets", i)
			}
		case generalize.KindBrackets:
			seenBracket = true
		}
	}
}

func TestRun_Drives_Full_Schedule_To_Minimal_Witness(t *testing.T) {
	t.Parallel()

	probe := newProbe(t, containsByte('A'))
	p := slot.FromBytes([]byte("prefix-stuff.more;stuff, (parenthetical) [bracketed] A"))

	out, err := generalize.Run(context.Background(), probe, p, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := slot.Materialize(out)
	if string(got) != "A" {
		t.Fatalf("Materialize = %q, want %q", got, "A")
	}
}

func TestRun_On_Single_Witness_Byte_Keeps_It(t *testing.T) {
	t.Parallel()

	probe := newProbe(t, containsByte('A'))
	p := slot.FromBytes([]byte("A"))

	out, err := generalize.Run(context.Background(), probe, p, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := slot.Materialize(out); string(got) != "A" {
		t.Fatalf("Materialize = %q, want %q", got, "A")
	}
}
