package slot

// Trim collapses each contiguous run of Gap slots to a single Gap,
// restoring invariant P-2 (post-phase compactness). It never changes
// Materialize(p), since Materialize already skips every Gap.
func Trim(p Payload) Payload {
	out := make(Payload, 0, len(p))

	prevGap := false
	for _, s := range p {
		if s.Kind == Gap {
			if prevGap {
				continue
			}

			prevGap = true
		} else {
			prevGap = false
		}

		out = append(out, s)
	}

	return out
}
