package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

const lastSalePrefix = "last_sale:"

// DefaultCutoffHour hora local en que empieza el día comercial.
const DefaultCutoffHour = 2

// BusinessDay fecha (medianoche UTC) del día comercial al que pertenece t.
// Antes de cutoffHour la hora cuenta para el día anterior: 01:59 del 20 es el día 19.
func BusinessDay(t time.Time, loc *time.Location, cutoffHour int) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if local.Hour() < cutoffHour {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// FirstSaleGate decide si una venta es la primera del día comercial de su dueño.
type FirstSaleGate struct {
	kv     repository.KVStore
	loc    *time.Location
	cutoff int
	mu     sync.Mutex
}

// NewFirstSaleGate construye la compuerta. loc nil = UTC.
func NewFirstSaleGate(kv repository.KVStore, loc *time.Location, cutoffHour int) *FirstSaleGate {
	if loc == nil {
		loc = time.UTC
	}
	return &FirstSaleGate{kv: kv, loc: loc, cutoff: cutoffHour}
}

// IsFirstSaleOfDay devuelve true y guarda now cuando no hay marca previa o su día comercial
// es anterior al de now. En otro caso devuelve false sin escribir.
func (g *FirstSaleGate) IsFirstSaleOfDay(ctx context.Context, ownerID string, now time.Time) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := lastSalePrefix + ownerID
	raw, ok, err := g.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("leer última venta: %w", err)
	}
	today := BusinessDay(now, g.loc, g.cutoff)
	if ok {
		// una marca ilegible se trata como ausente y se sobrescribe
		if last, perr := time.Parse(time.RFC3339Nano, raw); perr == nil {
			if !BusinessDay(last, g.loc, g.cutoff).Before(today) {
				return false, nil
			}
		}
	}
	if err := g.kv.Set(ctx, key, now.UTC().Format(time.RFC3339Nano), 0); err != nil {
		return false, fmt.Errorf("guardar última venta: %w", err)
	}
	return true, nil
}
