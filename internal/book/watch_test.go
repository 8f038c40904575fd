package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/contactbook/internal/storage"
)

func TestWatchReportsChanges(t *testing.T) {
	b, cfg := newTestBook(t)
	writer := New(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan storage.LoadResult, 8)
	done := make(chan error, 1)
	go func() {
		done <- b.Watch(ctx, 20*time.Millisecond, func(r storage.LoadResult) {
			select {
			case results <- r:
			default:
			}
		})
	}()

	select {
	case initial := <-results:
		assert.Empty(t, initial.Contacts)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial load")
	}

	_, err := writer.Add("Ada", "", "")
	require.NoError(t, err)

	deadline := time.After(5 * time.Second)
	for found := false; !found; {
		select {
		case r := <-results:
			found = len(r.Contacts) == 1 && r.Contacts[0].Name == "Ada"
		case <-deadline:
			t.Fatal("change was not reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
