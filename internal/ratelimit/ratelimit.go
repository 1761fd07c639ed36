package ratelimit

import (
	"sync"
	"time"
)

// Políticas por endpoint.
const (
	IntakeMaxRequests = 3
	IntakeWindow      = 120 * time.Second

	AdminMaxRequests = 120
	AdminWindow      = 60 * time.Second
)

const sweepInterval = 60 * time.Second

type Result struct {
	Allowed   bool
	Remaining int
}

// CounterStore cuenta peticiones por identificador dentro de una ventana
// fija. La implementación en memoria es el default (best-effort, por
// proceso); RedisStore permite compartir el contador entre instancias.
type CounterStore interface {
	Incr(id string, window time.Duration) (int, error)
}

type Limiter struct {
	store CounterStore
}

func New(store CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Allow aplica ventana fija: la primera petición (o la primera tras
// expirar la ventana) resetea el contador. Errores del store fallan en
// abierto: el limiter es mitigación de abuso, no una cuota dura.
func (l *Limiter) Allow(id string, max int, window time.Duration) Result {
	count, err := l.store.Incr(id, window)
	if err != nil {
		return Result{Allowed: true, Remaining: max - 1}
	}

	if count > max {
		return Result{Allowed: false, Remaining: 0}
	}
	return Result{Allowed: true, Remaining: max - count}
}

// ------------------------------------------------------
// Store en memoria
// ------------------------------------------------------

type entry struct {
	count     int
	resetTime time.Time
}

type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*entry
	lastSweep time.Time

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(id string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	e, ok := s.entries[id]
	if !ok || now.After(e.resetTime) {
		s.entries[id] = &entry{count: 1, resetTime: now.Add(window)}
		return 1, nil
	}

	e.count++
	return e.count, nil
}

// sweep elimina entradas expiradas como máximo una vez por intervalo,
// para acotar el crecimiento del mapa sin coste por petición.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now

	for id, e := range s.entries {
		if now.After(e.resetTime) {
			delete(s.entries, id)
		}
	}
}
