package lock

import (
	"sync"
	"testing"
)

func TestSpinLock(t *testing.T) {
	sl := NewSpinLock()
	n := 0
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				sl.Lock()
				n++
				sl.Unlock()
			}
		}()
	}
	wg.Wait()
	if n != 8000 {
		t.Fatal("lost updates:", n)
	}
}
