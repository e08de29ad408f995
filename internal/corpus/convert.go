package corpus

import "github.com/fuzzkit/genstage/internal/slot"

// ToSlotTags converts a payload to its persisted slot-tag form.
func ToSlotTags(p slot.Payload) []SlotTag {
	out := make([]SlotTag, len(p))

	for i, s := range p {
		if s.Kind == slot.Gap {
			out[i] = SlotTag{IsGap: true}
		} else {
			out[i] = SlotTag{Value: s.Value}
		}
	}

	return out
}

// FromSlotTags converts persisted slot tags back to a payload.
func FromSlotTags(tags []SlotTag) slot.Payload {
	out := make(slot.Payload, len(tags))

	for i, t := range tags {
		if t.IsGap {
			out[i] = slot.Slot{Kind: slot.Gap}
		} else {
			out[i] = slot.Slot{Kind: slot.Byte, Value: t.Value}
		}
	}

	return out
}
