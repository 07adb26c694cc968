package memory_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/adapters/storage/memory"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/domain"
)

func TestGetUnseenSessionIsEmpty(t *testing.T) {
	store := memory.NewSessionStore()

	got := store.Get("nope")
	assert.Empty(t, got)
	assert.Equal(t, 0, store.Len())
}

func TestAppendKeepsOrder(t *testing.T) {
	store := memory.NewSessionStore()

	store.Append("s1",
		domain.Turn{Role: domain.RoleUser, Text: "one"},
		domain.Turn{Role: domain.RoleModel, Text: "two"},
	)
	store.Append("s1", domain.Turn{Role: domain.RoleUser, Text: "three"})

	got := store.Get("s1")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{got[0].Text, got[1].Text, got[2].Text})
	assert.Equal(t, 1, store.Len())
}

func TestGetIsRepeatable(t *testing.T) {
	store := memory.NewSessionStore()
	store.Append("s1", domain.Turn{Role: domain.RoleUser, Text: "hello"})

	assert.Equal(t, store.Get("s1"), store.Get("s1"))
}

func TestGetReturnsCopy(t *testing.T) {
	store := memory.NewSessionStore()
	store.Append("s1", domain.Turn{Role: domain.RoleUser, Text: "hello"})

	got := store.Get("s1")
	got[0].Text = "tampered"
	_ = append(got, domain.Turn{Role: domain.RoleModel, Text: "extra"})

	again := store.Get("s1")
	require.Len(t, again, 1)
	assert.Equal(t, "hello", again[0].Text)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := memory.NewSessionStore()
	store.Append("a", domain.Turn{Role: domain.RoleUser, Text: "a"})
	store.Append("b", domain.Turn{Role: domain.RoleUser, Text: "b"})

	assert.Equal(t, "a", store.Get("a")[0].Text)
	assert.Equal(t, "b", store.Get("b")[0].Text)
}

func TestClear(t *testing.T) {
	store := memory.NewSessionStore()
	store.Append("s1", domain.Turn{Role: domain.RoleUser, Text: "hello"})

	store.Clear()

	assert.Empty(t, store.Get("s1"))
	assert.Equal(t, 0, store.Len())
}

func TestConcurrentAppendsOnDistinctSessions(t *testing.T) {
	store := memory.NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := domain.SessionID(fmt.Sprintf("s%d", i))
			store.Append(id, domain.Turn{Role: domain.RoleUser, Text: "x"})
			_ = store.Get(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}
