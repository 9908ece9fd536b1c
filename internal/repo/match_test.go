package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByFrequency_StableOnTies(t *testing.T) {
	faqs := []FAQ{
		{ID: "a", Frequency: 3},
		{ID: "b", Frequency: 7},
		{ID: "c", Frequency: 3},
		{ID: "d", Frequency: 7},
		{ID: "e", Frequency: 0},
	}

	SortByFrequency(faqs)

	ids := make([]string, len(faqs))
	for i, f := range faqs {
		ids[i] = f.ID
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids)
}

func TestMatchFAQ(t *testing.T) {
	faqs := []FAQ{
		{ID: "1", Question: "Am I eligible for the trial?"},
		{ID: "2", Question: "What are the side effects of the vaccine?"},
		{ID: "3", Question: "Can I go?"},
	}

	tests := []struct {
		name   string
		text   string
		wantID string
		found  bool
	}{
		{"keyword with trailing punctuation in question", "tell me about the trial", "1", true},
		{"case insensitive", "Any SIDE effects I should know?", "2", true},
		{"first match in order wins", "eligible for the vaccine", "1", true},
		{"short words are ignored", "can i go", "", false},
		{"substring containment", "vaccines", "2", true},
		{"empty input", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchFAQ(faqs, tt.text)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	s, avail := NormalizeStatus("")
	assert.Equal(t, SlotStatusAvailable, s)
	assert.True(t, avail)

	s, avail = NormalizeStatus(SlotStatusBooked)
	assert.Equal(t, SlotStatusBooked, s)
	assert.False(t, avail)

	s, avail = NormalizeStatus("whatever")
	assert.Equal(t, SlotStatusAvailable, s)
	assert.True(t, avail)
}
