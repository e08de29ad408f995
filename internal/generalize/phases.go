package generalize

import (
	"context"

	"github.com/fuzzkit/genstage/internal/slot"
)

// Stride nominates ranges by a fixed offset: end = start + 1 + off,
// clamped to len(p) (spec.md §4.3.1). off=255,127,63,31,0 is the
// geometric descent used by the phase schedule — big chunks first,
// single bytes last.
func Stride(ctx context.Context, probe *Probe, p slot.Payload, off byte) (slot.Payload, error) {
	start := 0

	for start < len(p) {
		end := start + 1 + int(off)
		if end > len(p) {
			end = len(p)
		}

		ok, err := probe.Verify(ctx, slot.MaterializeRange(p, start, end))
		if err != nil {
			return nil, err
		}

		if ok {
			slot.FillGap(p, start, end)
		}

		start = end
	}

	return slot.Trim(p), nil
}

// Split nominates ranges up to and including the next occurrence of
// ch, deleting a token-like segment together with its terminator
// (spec.md §4.3.2).
func Split(ctx context.Context, probe *Probe, p slot.Payload, ch byte) (slot.Payload, error) {
	start := 0

	for start < len(p) {
		end := findNext(p, start, ch)

		ok, err := probe.Verify(ctx, slot.MaterializeRange(p, start, end))
		if err != nil {
			return nil, err
		}

		if ok {
			slot.FillGap(p, start, end)
		}

		start = end
	}

	return slot.Trim(p), nil
}

func findNext(p slot.Payload, start int, ch byte) int {
	for i := start; i < len(p); i++ {
		if p.At(i, ch) {
			return i + 1
		}
	}

	return len(p)
}

// Brackets nominates a removable unit from an opening byte up to but
// not including a matching closing byte (spec.md §4.3.3). The asymmetry
// — the opener is deleted, the closer kept — is intentional (spec.md
// §9) and must not be "fixed" to [start, end+1).
//
// A successful deletion ends the search for this opening bracket's
// match (start advances to end, which makes the inner loop's end>start
// condition false on the next check); a rejected candidate keeps
// scanning further left for an earlier closing byte to pair with the
// same opener, per spec.md §4.3.3's literal loop body.
func Brackets(ctx context.Context, probe *Probe, p slot.Payload, open, close byte) (slot.Payload, error) {
	index := 0

	for index < len(p) {
		for index < len(p) && !p.At(index, open) {
			index++
		}

		if index >= len(p) {
			break
		}

		start := index
		end := len(p) - 1

		for end > start {
			if p.At(end, close) {
				ok, err := probe.Verify(ctx, slot.MaterializeRange(p, start, end))
				if err != nil {
					return nil, err
				}

				if ok {
					slot.FillGap(p, start, end)
					start = end
				}
			}

			end--
		}

		index = start + 1
	}

	return slot.Trim(p), nil
}
