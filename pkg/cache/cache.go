package cache

import (
	"sync"
	"time"
)

// Cache é uma memoização em memória com TTL fixo. O produtor de um valor
// roda no máximo uma vez por chave dentro da janela do TTL sob chamadores
// concorrentes; um valor parcialmente escrito nunca é devolvido.
type Cache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu        sync.Mutex
	value     any
	fetchedAt time.Time
	valid     bool
}

// New cria um cache com o TTL informado
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// Remember devolve o valor memoizado para a chave ou executa o produtor e
// guarda o resultado. Erros do produtor não são memoizados.
func (c *Cache) Remember(key string, producer func() (any, error)) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.valid && time.Since(e.fetchedAt) < c.ttl {
		return e.value, nil
	}

	value, err := producer()
	if err != nil {
		return nil, err
	}

	e.value = value
	e.fetchedAt = time.Now()
	e.valid = true

	return value, nil
}

// Forget descarta a entrada da chave informada
func (c *Cache) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge descarta todas as entradas
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}
