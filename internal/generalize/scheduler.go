package generalize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fuzzkit/genstage/internal/slot"
)

// Kind identifies which nomination strategy a phase uses.
type Kind int

const (
	KindStride Kind = iota
	KindSplit
	KindBrackets
)

// Phase is one entry in the fixed schedule: a nomination strategy plus
// its parameters.
type Phase struct {
	Kind        Kind
	Param       byte // used by KindStride (off) and KindSplit (ch)
	Open, Close byte // used by KindBrackets
}

func (p Phase) String() string {
	switch p.Kind {
	case KindStride:
		return fmt.Sprintf("stride(%d)", p.Param)
	case KindSplit:
		return fmt.Sprintf("split(%q)", p.Param)
	case KindBrackets:
		return fmt.Sprintf("brackets(%q,%q)", p.Open, p.Close)
	default:
		return "unknown"
	}
}

// Schedule is the fixed, ordered pipeline from spec.md §4.5. The order
// is load-bearing: coarse stride shrinking first, then token-boundary
// splits, then bracketed-region removal once the payload is already
// small. This is a package-level constant, not a tuning knob — do not
// reorder or parameterize it.
var Schedule = []Phase{
	{Kind: KindStride, Param: 255},
	{Kind: KindStride, Param: 127},
	{Kind: KindStride, Param: 63},
	{Kind: KindStride, Param: 31},
	{Kind: KindStride, Param: 0},
	{Kind: KindSplit, Param: '.'},
	{Kind: KindSplit, Param: ';'},
	{Kind: KindSplit, Param: ','},
	{Kind: KindSplit, Param: '\n'},
	{Kind: KindSplit, Param: '\r'},
	{Kind: KindSplit, Param: '#'},
	{Kind: KindSplit, Param: ' '},
	{Kind: KindBrackets, Open: '(', Close: ')'},
	{Kind: KindBrackets, Open: '[', Close: ']'},
	{Kind: KindBrackets, Open: '{', Close: '}'},
	{Kind: KindBrackets, Open: '<', Close: '>'},
	{Kind: KindBrackets, Open: '\'', Close: '\''},
	{Kind: KindBrackets, Open: '"', Close: '"'},
}

// Run drives the full phase schedule over p in order, returning the
// payload left by the last phase. logger may be nil.
func Run(ctx context.Context, probe *Probe, p slot.Payload, logger *slog.Logger) (slot.Payload, error) {
	for _, ph := range Schedule {
		before := len(p)

		var err error

		switch ph.Kind {
		case KindStride:
			p, err = Stride(ctx, probe, p, ph.Param)
		case KindSplit:
			p, err = Split(ctx, probe, p, ph.Param)
		case KindBrackets:
			p, err = Brackets(ctx, probe, p, ph.Open, ph.Close)
		}

		if err != nil {
			return nil, fmt.Errorf("phase %s: %w", ph, err)
		}

		if logger != nil {
			logger.Debug("generalize phase complete", "phase", ph.String(), "slots_before", before, "slots_after", len(p))
		}
	}

	return p, nil
}
