package ratelimit

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_FixedWindow(t *testing.T) {
	current := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := NewMemoryStore()
	store.now = func() time.Time { return current }

	l := New(store)

	// 3 peticiones dentro de la ventana pasan
	for i := 0; i < 3; i++ {
		res := l.Allow("intake:1.2.3.4", 3, 120*time.Second)
		assert.True(t, res.Allowed, "petición %d", i+1)
		assert.Equal(t, 2-i, res.Remaining)
	}

	// la cuarta se bloquea
	res := l.Allow("intake:1.2.3.4", 3, 120*time.Second)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	// pasada la ventana, el contador resetea
	current = current.Add(121 * time.Second)
	res = l.Allow("intake:1.2.3.4", 3, 120*time.Second)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestLimiter_IndependentKeys(t *testing.T) {
	store := NewMemoryStore()
	l := New(store)

	for i := 0; i < 3; i++ {
		l.Allow("intake:1.1.1.1", 3, time.Minute)
	}

	assert.False(t, l.Allow("intake:1.1.1.1", 3, time.Minute).Allowed)
	assert.True(t, l.Allow("intake:2.2.2.2", 3, time.Minute).Allowed)
}

func TestMemoryStore_Sweep(t *testing.T) {
	current := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := NewMemoryStore()
	store.now = func() time.Time { return current }

	for i := 0; i < 50; i++ {
		_, err := store.Incr(fmt.Sprintf("k%d", i), time.Second)
		assert.NoError(t, err)
	}
	assert.Len(t, store.entries, 50)

	// tras el intervalo de limpieza las entradas expiradas desaparecen
	current = current.Add(2 * time.Minute)
	_, err := store.Incr("fresh", time.Minute)
	assert.NoError(t, err)
	assert.Len(t, store.entries, 1)
}

type failingStore struct{}

func (failingStore) Incr(string, time.Duration) (int, error) {
	return 0, errors.New("store down")
}

func TestLimiter_FailsOpen(t *testing.T) {
	l := New(failingStore{})

	res := l.Allow("admin:u1", 120, time.Minute)
	assert.True(t, res.Allowed)
}
