package corpus_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fuzzkit/genstage/internal/corpus"
)

func Test_EncodeSlots_Then_DecodeSlots_Round_Trips(t *testing.T) {
	t.Parallel()

	tags := []corpus.SlotTag{
		{Value: 'a'},
		{IsGap: true},
		{Value: 'b'},
		{IsGap: true},
		{Value: 'c'},
	}

	data := corpus.EncodeSlots(tags)

	got, err := corpus.DecodeSlots(data)
	if err != nil {
		t.Fatalf("DecodeSlots: %v", err)
	}

	if diff := cmp.Diff(tags, got); diff != "" {
		t.Fatalf("DecodeSlots(EncodeSlots(tags)) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSlots_Rejects_Bad_Magic(t *testing.T) {
	t.Parallel()

	data := corpus.EncodeSlots([]corpus.SlotTag{{Value: 'x'}})
	data[0] = 'Z'

	if _, err := corpus.DecodeSlots(data); err == nil {
		t.Fatalf("DecodeSlots() error = nil, want ErrBadMagic")
	}
}

func TestDecodeSlots_Rejects_Truncated_Body(t *testing.T) {
	t.Parallel()

	data := corpus.EncodeSlots([]corpus.SlotTag{{Value: 'x'}, {IsGap: true}})

	if _, err := corpus.DecodeSlots(data[:len(data)-1]); err == nil {
		t.Fatalf("DecodeSlots() error = nil, want ErrTruncated")
	}
}

func TestEncodeSlots_Empty_Payload(t *testing.T) {
	t.Parallel()

	data := corpus.EncodeSlots(nil)

	got, err := corpus.DecodeSlots(data)
	if err != nil {
		t.Fatalf("DecodeSlots: %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("len(got) = %d, want 0", len(got))
	}
}
