package faq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/trialbook_backend/internal/repo/memory"
)

func TestIncrementAndSorted(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewClient(true))

	for i := 0; i < 5; i++ {
		_, err := svc.Increment(ctx, "5")
		require.NoError(t, err)
	}

	faqs, err := svc.Sorted(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(faqs))
	for _, f := range faqs {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"3", "1", "2", "5", "4"}, ids)
	assert.Equal(t, 38, faqs[3].Frequency)

	_, err = svc.Increment(ctx, "99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatch(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewClient(true))

	f, err := svc.Match(ctx, "How long is it?")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "2", f.ID)

	f, err = svc.Match(ctx, "hi there")
	require.NoError(t, err)
	assert.Nil(t, f)
}
