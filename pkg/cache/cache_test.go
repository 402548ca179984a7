package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberMemoizesWithinTTL(t *testing.T) {
	c := New(time.Minute)

	calls := 0
	producer := func() (any, error) {
		calls++
		return "valor", nil
	}

	first, err := c.Remember("chave", producer)
	require.NoError(t, err)
	assert.Equal(t, "valor", first)

	second, err := c.Remember("chave", producer)
	require.NoError(t, err)
	assert.Equal(t, "valor", second)
	assert.Equal(t, 1, calls)
}

func TestRememberExpiresAfterTTL(t *testing.T) {
	c := New(10 * time.Millisecond)

	calls := 0
	producer := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.Remember("chave", producer)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	value, err := c.Remember("chave", producer)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestRememberDoesNotMemoizeErrors(t *testing.T) {
	c := New(time.Minute)

	calls := 0
	_, err := c.Remember("chave", func() (any, error) {
		calls++
		return nil, errors.New("indisponível")
	})
	require.Error(t, err)

	value, err := c.Remember("chave", func() (any, error) {
		calls++
		return "recuperado", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recuperado", value)
	assert.Equal(t, 2, calls)
}

func TestRememberSingleFlightPerKey(t *testing.T) {
	c := New(time.Minute)

	var calls int
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Remember("chave", func() (any, error) {
				calls++
				time.Sleep(5 * time.Millisecond)
				return "valor", nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// O produtor roda uma única vez mesmo sob concorrência
	assert.Equal(t, 1, calls)
}

func TestForget(t *testing.T) {
	c := New(time.Minute)

	calls := 0
	producer := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.Remember("chave", producer)
	require.NoError(t, err)

	c.Forget("chave")

	value, err := c.Remember("chave", producer)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestPurge(t *testing.T) {
	c := New(time.Minute)

	for _, key := range []string{"a", "b"} {
		_, err := c.Remember(key, func() (any, error) { return key, nil })
		require.NoError(t, err)
	}

	c.Purge()

	calls := 0
	_, err := c.Remember("a", func() (any, error) {
		calls++
		return "novo", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
