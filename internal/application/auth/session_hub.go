package auth

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Pos-api/internal/domain/entity"
)

// EventType tipo de cambio de sesión.
type EventType string

// Eventos publicados por el hub.
const (
	EventSignedUp    EventType = "signed_up"
	EventSignedIn    EventType = "signed_in"
	EventSignedOut   EventType = "signed_out"
	EventUserUpdated EventType = "user_updated"
)

// SessionEvent cambio de sesión o de perfil. User es una copia; nil solo en signed_out sin perfil.
type SessionEvent struct {
	Type   EventType
	UserID string
	User   *entity.User
	At     time.Time
}

// subscription mu se mantiene tomado desde la verificación de active hasta que fn retorna;
// deliverer es el goroutine que está dentro de fn (0 si ninguno).
type subscription struct {
	fn        func(SessionEvent)
	mu        sync.Mutex
	active    bool
	deliverer atomic.Int64
}

// SessionHub observable explícito de eventos de sesión.
//
// Los callbacks corren de forma síncrona en el goroutine que publica, en orden de
// publicación. unsubscribe espera a que termine una entrega en curso de esa suscripción,
// así que cuando retorna el callback ya no se vuelve a invocar. Es idempotente y puede
// llamarse desde el propio callback; en ese caso no espera.
type SessionHub struct {
	mu        sync.Mutex
	deliverMu sync.Mutex
	subs      map[uint64]*subscription
	order     []uint64
	next      uint64
	now       func() time.Time
}

// NewSessionHub crea un hub sin suscriptores.
func NewSessionHub() *SessionHub {
	return &SessionHub{subs: make(map[uint64]*subscription), now: time.Now}
}

// Subscribe registra fn y devuelve la función para cancelar la suscripción.
func (h *SessionHub) Subscribe(fn func(SessionEvent)) (unsubscribe func()) {
	h.mu.Lock()
	h.next++
	id := h.next
	sub := &subscription{fn: fn, active: true}
	h.subs[id] = sub
	h.order = append(h.order, id)
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			for i, v := range h.order {
				if v == id {
					h.order = append(h.order[:i:i], h.order[i+1:]...)
					break
				}
			}
		}
		h.mu.Unlock()

		// Desde el propio callback sub.mu ya lo tiene este goroutine.
		if sub.deliverer.Load() == goroutineID() {
			sub.active = false
			return
		}
		sub.mu.Lock()
		sub.active = false
		sub.mu.Unlock()
	}
}

// Publish entrega el evento a los suscriptores activos, en orden de suscripción.
func (h *SessionHub) Publish(t EventType, user *entity.User) {
	ev := SessionEvent{Type: t, At: h.now()}
	if user != nil {
		cp := *user
		cp.PasswordHash = ""
		ev.User = &cp
		ev.UserID = user.ID
	}
	h.publish(ev)
}

// PublishSignedOut evento de cierre de sesión cuando solo se conoce el ID.
func (h *SessionHub) PublishSignedOut(userID string) {
	h.publish(SessionEvent{Type: EventSignedOut, UserID: userID, At: h.now()})
}

func (h *SessionHub) publish(ev SessionEvent) {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	h.mu.Lock()
	ids := make([]uint64, len(h.order))
	copy(ids, h.order)
	h.mu.Unlock()

	var gid int64
	for _, id := range ids {
		h.mu.Lock()
		sub, ok := h.subs[id]
		h.mu.Unlock()
		if !ok {
			continue
		}
		if gid == 0 {
			gid = goroutineID()
		}
		h.deliver(sub, ev, gid)
	}
}

func (h *SessionHub) deliver(sub *subscription, ev SessionEvent, gid int64) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if !sub.active {
		return
	}
	sub.deliverer.Store(gid)
	defer sub.deliverer.Store(0)
	sub.fn(ev)
}

// goroutineID id del goroutine actual según la cabecera de runtime.Stack ("goroutine N [...]").
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(bytes.TrimPrefix(buf[:n], []byte("goroutine ")))
	if len(fields) == 0 {
		return -1
	}
	id, err := strconv.ParseInt(string(fields[0]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}

// Len número de suscripciones activas.
func (h *SessionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
