package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

// These tests run against a disposable database named by TRIALBOOK_TEST_DATABASE_URL.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TRIALBOOK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TRIALBOOK_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE booking_slots, chat_entries, users, faqs`)
	require.NoError(t, err)
	require.NoError(t, Seed(ctx, pool, time.Now()))
	return pool
}

func TestSlotStore_BookOnceUnderContention(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := NewSlotStore(pool)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Book(ctx, "1", repo.Patient{Name: "P", Email: "p@example.com", Phone: "1234567890"})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, repo.ErrSlotNotAvailable)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, success)

	_, err := s.Book(ctx, "missing", repo.Patient{})
	assert.ErrorIs(t, err, repo.ErrSlotNotFound)
}

func TestUserStore_GetOrCreateAndChat(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := NewUserStore(pool)

	u, err := s.GetOrCreate(ctx, repo.Patient{Name: "Jane", Email: "jane@example.com", Phone: "1234567890"}, "1")
	require.NoError(t, err)
	again, err := s.GetOrCreate(ctx, repo.Patient{Name: "Jane", Email: "JANE@example.com", Phone: "1234567890"}, "2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, []string{"1", "2"}, again.Bookings)

	_, entry, err := s.AppendChat(ctx, u.ID, "q", "a", nil)
	require.NoError(t, err)
	got, err := s.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Len(t, got.ChatHistory, 1)
	assert.Equal(t, entry.ID, got.ChatHistory[0].ID)

	_, _, err = s.AppendChat(ctx, "missing", "q", "a", nil)
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}

func TestFAQStore_Increment(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := NewFAQStore(pool)

	f, err := s.IncrementFrequency(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, 30, f.Frequency)

	sorted, err := s.SortedByFrequency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", sorted[0].ID)

	_, err = s.IncrementFrequency(ctx, "nope")
	assert.ErrorIs(t, err, repo.ErrFAQNotFound)
}
