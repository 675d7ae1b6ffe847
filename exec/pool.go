package exec

import (
	"github.com/panjf2000/ants/v2"

	"github.com/fixkme/timerkit/mlog"
)

// Pool ants协程池封装的执行器
type Pool struct {
	p *ants.Pool
}

func NewPool(size int) (*Pool, error) {
	p, err := ants.NewPool(size, ants.WithPanicHandler(func(r interface{}) {
		mlog.Errorf("exec pool task panic: %v", r)
	}))
	if err != nil {
		return nil, err
	}
	return &Pool{p: p}, nil
}

func (p *Pool) Execute(task func()) error {
	return p.p.Submit(task)
}

func (p *Pool) Running() int {
	return p.p.Running()
}

func (p *Pool) Release() {
	p.p.Release()
}
