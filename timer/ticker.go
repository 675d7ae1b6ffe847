package timer

import (
	"time"
)

// Ticker 用真实时间驱动Manager，每interval调一次Tick。
// Manager本身只认逻辑tick，这里是一个可选的外部驱动
type Ticker struct {
	mgr      *Manager
	interval time.Duration
}

func NewTicker(m *Manager, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &Ticker{mgr: m, interval: interval}
}

func (t *Ticker) Start(quit <-chan struct{}) {
	go t.run(quit)
}

func (t *Ticker) run(quit <-chan struct{}) {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	last := time.Now()
	for {
		select {
		case <-quit:
			return
		case now := <-tk.C:
			// 卡顿后补齐错过的tick
			for !last.Add(t.interval).After(now) {
				last = last.Add(t.interval)
				t.mgr.Tick()
			}
		}
	}
}
