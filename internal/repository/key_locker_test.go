package repository

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestKeyLocker_SerializesSameKey(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	locker := NewKeyLocker(log)
	defer locker.Stop()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("swasthya_orders")
			defer unlock()
			current := counter
			time.Sleep(time.Microsecond)
			counter = current + 1
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
}

func TestKeyLocker_CleanupSkipsHeldMutex(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	locker := NewKeyLocker(log)
	defer locker.Stop()

	locker.Lock("idle")()
	unlock := locker.Lock("busy")

	cleaned := locker.cleanupStale(time.Now().Add(time.Hour))
	require.Equal(t, 1, cleaned)

	_, ok := locker.keyMu.Load("busy")
	require.True(t, ok)
	unlock()
}
