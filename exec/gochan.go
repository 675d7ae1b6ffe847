package exec

import (
	"github.com/fixkme/timerkit/errs"
	"github.com/fixkme/timerkit/mlog"
)

// GoChan 用chan func()实现的单消费者执行器，需要自己起协程跑Run。
// Close只能在所有生产者停止之后调用
type GoChan struct {
	ChanCb       chan func()
	panicHandler func(r any)
	closed       bool
}

func NewGoChan(size int) *GoChan {
	if size < 1024 {
		size = 1024
	} else if size > 102400 {
		size = 102400
	}

	g := new(GoChan)
	g.ChanCb = make(chan func(), size)
	g.panicHandler = func(r any) {
		mlog.Errorf("exec task panic: %v", r)
	}
	return g
}

func (g *GoChan) SetPanicHandler(f func(r any)) {
	if f != nil {
		g.panicHandler = f
	}
}

func (g *GoChan) Close() {
	g.closed = true
	close(g.ChanCb)
}

func (g *GoChan) Execute(task func()) error {
	if g.closed {
		return errs.Closed
	}
	select {
	case g.ChanCb <- task:
		return nil
	default:
		return errs.QueueFull
	}
}

func (g *GoChan) Run(quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			// 排干剩余任务再退出
			for {
				select {
				case cb, ok := <-g.ChanCb:
					if !ok {
						return
					}
					g.exec(cb)
				default:
					return
				}
			}
		case cb, ok := <-g.ChanCb:
			if !ok {
				return
			}
			g.exec(cb)
		}
	}
}

func (g *GoChan) exec(cb func()) {
	defer func() {
		if r := recover(); r != nil {
			g.panicHandler(r)
		}
	}()

	cb()
}
