package auth

import (
	"sync"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// CurrentUserState instantánea del usuario observado. Resolved=false mientras no se conoce.
// User nil con Resolved=true significa sesión cerrada.
type CurrentUserState struct {
	Resolved bool
	User     *entity.User
}

// CurrentUser valor reactivo del perfil de un usuario, alimentado por el SessionHub.
type CurrentUser struct {
	mu       sync.Mutex
	userID   string
	state    CurrentUserState
	watchers map[int]chan CurrentUserState
	next     int
	stop     func()
}

// NewCurrentUser observa los eventos de userID. Llamar Close al terminar.
func NewCurrentUser(hub *SessionHub, userID string) *CurrentUser {
	cu := &CurrentUser{userID: userID, watchers: make(map[int]chan CurrentUserState)}
	cu.stop = hub.Subscribe(cu.onEvent)
	return cu
}

// Resolve fija el valor inicial (ej. perfil leído de la base).
func (cu *CurrentUser) Resolve(u *entity.User) {
	cu.set(CurrentUserState{Resolved: true, User: u})
}

// Get devuelve el usuario y si ya fue resuelto.
func (cu *CurrentUser) Get() (*entity.User, bool) {
	cu.mu.Lock()
	defer cu.mu.Unlock()
	return cu.state.User, cu.state.Resolved
}

// Watch entrega el estado actual y cada cambio posterior. El canal guarda solo el
// último valor pendiente; cancel lo cierra.
func (cu *CurrentUser) Watch() (<-chan CurrentUserState, func()) {
	ch := make(chan CurrentUserState, 1)
	cu.mu.Lock()
	id := cu.next
	cu.next++
	cu.watchers[id] = ch
	ch <- cu.state
	cu.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			cu.mu.Lock()
			defer cu.mu.Unlock()
			if _, ok := cu.watchers[id]; ok {
				delete(cu.watchers, id)
				close(ch)
			}
		})
	}
}

// Close deja de escuchar el hub y cierra todos los watchers.
func (cu *CurrentUser) Close() {
	cu.stop()
	cu.mu.Lock()
	defer cu.mu.Unlock()
	for id, ch := range cu.watchers {
		delete(cu.watchers, id)
		close(ch)
	}
}

func (cu *CurrentUser) onEvent(ev SessionEvent) {
	if ev.UserID != cu.userID {
		return
	}
	switch ev.Type {
	case EventSignedOut:
		cu.set(CurrentUserState{Resolved: true})
	case EventSignedIn, EventSignedUp, EventUserUpdated:
		cu.set(CurrentUserState{Resolved: true, User: ev.User})
	}
}

func (cu *CurrentUser) set(s CurrentUserState) {
	cu.mu.Lock()
	defer cu.mu.Unlock()
	cu.state = s
	for _, ch := range cu.watchers {
		// descarta el valor pendiente no leído; el watcher solo necesita el último
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
