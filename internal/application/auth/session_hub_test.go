package auth

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

func TestSessionHub_DeliversInOrder(t *testing.T) {
	hub := NewSessionHub()
	var got []string
	hub.Subscribe(func(ev SessionEvent) { got = append(got, "a:"+string(ev.Type)) })
	hub.Subscribe(func(ev SessionEvent) { got = append(got, "b:"+string(ev.Type)) })

	u := &entity.User{ID: "u1", PasswordHash: "hash"}
	hub.Publish(EventSignedIn, u)
	hub.Publish(EventUserUpdated, u)

	assert.Equal(t, []string{"a:signed_in", "b:signed_in", "a:user_updated", "b:user_updated"}, got)
}

func TestSessionHub_EventHidesPasswordHash(t *testing.T) {
	hub := NewSessionHub()
	var ev SessionEvent
	hub.Subscribe(func(e SessionEvent) { ev = e })

	u := &entity.User{ID: "u1", PasswordHash: "hash"}
	hub.Publish(EventSignedUp, u)

	require.NotNil(t, ev.User)
	assert.Empty(t, ev.User.PasswordHash)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, "u1", ev.UserID)
}

func TestSessionHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := NewSessionHub()
	calls := 0
	unsubscribe := hub.Subscribe(func(SessionEvent) { calls++ })
	other := 0
	hub.Subscribe(func(SessionEvent) { other++ })

	hub.PublishSignedOut("u1")
	unsubscribe()
	unsubscribe()
	hub.PublishSignedOut("u1")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
	assert.Equal(t, 1, hub.Len())
}

func TestSessionHub_UnsubscribeFromCallback(t *testing.T) {
	hub := NewSessionHub()
	calls := 0
	var unsubscribe func()
	unsubscribe = hub.Subscribe(func(SessionEvent) {
		calls++
		unsubscribe()
	})

	hub.PublishSignedOut("u1")
	hub.PublishSignedOut("u1")
	assert.Equal(t, 1, calls)
}

func TestSessionHub_UnsubscribeSkipsLaterSubscribersInSameRound(t *testing.T) {
	hub := NewSessionHub()
	secondCalls := 0
	var unsubSecond func()
	hub.Subscribe(func(SessionEvent) { unsubSecond() })
	unsubSecond = hub.Subscribe(func(SessionEvent) { secondCalls++ })

	hub.PublishSignedOut("u1")
	assert.Zero(t, secondCalls)
}

func TestSessionHub_NoCallsStartAfterUnsubscribeReturns(t *testing.T) {
	hub := NewSessionHub()
	var mu sync.Mutex
	calls := 0
	unsubscribe := hub.Subscribe(func(SessionEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				hub.PublishSignedOut("u1")
			}
		}()
	}
	unsubscribe()
	mu.Lock()
	atUnsubscribe := calls
	mu.Unlock()
	wg.Wait()

	assert.Equal(t, atUnsubscribe, calls, "ninguna invocación después de que unsubscribe retorna")
	assert.Zero(t, hub.Len())
}

func TestSessionHub_UnsubscribeWaitsForCallbackInProgress(t *testing.T) {
	hub := NewSessionHub()
	entered := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	unsubscribe := hub.Subscribe(func(SessionEvent) {
		close(entered)
		<-release
		finished.Store(true)
	})

	go hub.PublishSignedOut("u1")
	<-entered

	done := make(chan struct{})
	go func() {
		unsubscribe()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("unsubscribe retornó con el callback todavía en curso")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unsubscribe no retornó al terminar el callback")
	}
	assert.True(t, finished.Load())

	hub.PublishSignedOut("u1") // cerraría entered otra vez si se invocara
}
