package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

func TestCurrentUser_FollowsHubEvents(t *testing.T) {
	hub := NewSessionHub()
	cu := NewCurrentUser(hub, "u1")
	defer cu.Close()

	_, resolved := cu.Get()
	assert.False(t, resolved)

	cu.Resolve(&entity.User{ID: "u1", Role: entity.RoleCashier})
	u, resolved := cu.Get()
	require.True(t, resolved)
	assert.Equal(t, entity.RoleCashier, u.Role)

	hub.Publish(EventUserUpdated, &entity.User{ID: "otro", Role: entity.RoleAdmin})
	u, _ = cu.Get()
	assert.Equal(t, entity.RoleCashier, u.Role)

	hub.Publish(EventUserUpdated, &entity.User{ID: "u1", Role: entity.RoleManager})
	u, _ = cu.Get()
	assert.Equal(t, entity.RoleManager, u.Role)

	hub.PublishSignedOut("u1")
	u, resolved = cu.Get()
	assert.True(t, resolved)
	assert.Nil(t, u)
}

func TestCurrentUser_WatchKeepsLatest(t *testing.T) {
	hub := NewSessionHub()
	cu := NewCurrentUser(hub, "u1")
	defer cu.Close()

	ch, cancel := cu.Watch()
	first := <-ch
	assert.False(t, first.Resolved)

	hub.Publish(EventSignedIn, &entity.User{ID: "u1", Role: entity.RoleStaff})
	hub.Publish(EventUserUpdated, &entity.User{ID: "u1", Role: entity.RoleAdmin})

	latest := <-ch
	require.NotNil(t, latest.User)
	assert.Equal(t, entity.RoleAdmin, latest.User.Role)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestCurrentUser_CloseStopsListening(t *testing.T) {
	hub := NewSessionHub()
	cu := NewCurrentUser(hub, "u1")
	ch, _ := cu.Watch()
	<-ch

	cu.Close()
	assert.Zero(t, hub.Len())
	_, open := <-ch
	assert.False(t, open)

	hub.Publish(EventSignedIn, &entity.User{ID: "u1"})
	_, resolved := cu.Get()
	assert.False(t, resolved)
}
