package timer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fixkme/timerkit/exec"
)

// 多生产者并发装定/停止/销毁，单tick协程推进，配合-race验证并发模型
func TestConcurrentProducers(t *testing.T) {
	m := NewManager(0, 64)
	pool, err := exec.NewPool(4)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Release()

	stopTick := make(chan struct{})
	tickDone := make(chan struct{})
	go func() {
		defer close(tickDone)
		for {
			select {
			case <-stopTick:
				return
			default:
				m.Tick()
				time.Sleep(50 * time.Microsecond)
			}
		}
	}()

	const producers = 8
	const perProducer = 50
	var fired atomic.Int64
	var expectFired atomic.Int64
	var kept sync.Map // 留到最后的定时器，必须全部到期

	wg := sync.WaitGroup{}
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				tm := m.CreateTimer(pool)
				switch i % 3 {
				case 0: // 装定后立刻销毁
					tm.SetWithCallback(int64(1+i%32), func(TimerId) { fired.Add(1) })
					tm.Run()
					tm.Destroy()
				case 1: // 装定后停止（尽力而为，可能已到期）
					tm.SetWithCallback(int64(1+i%32), func(TimerId) { fired.Add(1) })
					tm.Run()
					tm.Stop()
					tm.Destroy()
				default: // 留着等到期
					expectFired.Add(1)
					tm.SetWithCallback(int64(1+i%32), func(TimerId) { fired.Add(1) })
					tm.Run()
					kept.Store(tm, struct{}{})
				}
			}
		}(p)
	}
	wg.Wait()

	// 再推一轮整轮，留下的定时器全部到期
	time.Sleep(50 * time.Millisecond)
	close(stopTick)
	<-tickDone
	tickN(m, 65)
	// 等executor把回调跑完
	deadline := time.Now().Add(3 * time.Second)
	for fired.Load() < expectFired.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if fired.Load() < expectFired.Load() {
		t.Fatal("kept timers should all fire:", fired.Load(), "<", expectFired.Load())
	}

	kept.Range(func(k, _ any) bool {
		tm := k.(*UniqueTimer)
		if !tm.HasExpired() {
			t.Fatal("kept timer not expired, id:", tm.Id())
		}
		tm.Destroy()
		return true
	})
	tickN(m, 1)
	if m.NumTimers() != 0 || m.NumRunning() != 0 {
		t.Fatal("accounting broken:", m.NumTimers(), m.NumRunning())
	}
}
