package timer

import (
	"sync"
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/fixkme/timerkit/ds/slab"
	"github.com/fixkme/timerkit/exec"
	"github.com/fixkme/timerkit/lock"
	"github.com/fixkme/timerkit/mlog"
)

const (
	DefaultPreReserve  = 64
	DefaultMaxDuration = 1 << 14

	// 待处理命令堆到这个量级，基本可以断定tick驱动卡死了
	cmdBacklogWarn = 1 << 16
)

// Manager 多生产者单tick线程的定时器管理器。
// 任意线程创建/装定/停止/销毁定时器，变更都先进命令队列；
// 唯一的外部驱动按周期调Tick，由tick线程统一应用命令并触发到期。
// Manager没有真实时间概念，只认逻辑tick。
type Manager struct {
	inst string // 实例标识，打日志用

	// 后端状态，仅tick线程访问（curTick只有tick线程写，任意线程可读）
	curTick    atomic.Uint64
	wheel      []TimerId // bucket头，下标 = 绝对到期tick % len(wheel)
	numRunning atomic.Int64
	view       slab.View[timerSlot] // 本轮tick取的存储快照

	// 槽位存储，分配/回收在cmdMu内
	pool *slab.Slab[timerSlot]

	cmdMu       sync.Locker
	pendingCmds []timerCmd
	drainedCmds []timerCmd
}

// NewManager 创建管理器。preReserve是预留的槽位数，
// maxDuration是支持的最大时长（tick数），也就是时间轮的容量，创建后不可变。
func NewManager(preReserve int, maxDuration int64) *Manager {
	if preReserve <= 0 {
		preReserve = DefaultPreReserve
	}
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	m := &Manager{
		inst:  xid.New().String(),
		wheel: make([]TimerId, maxDuration),
		pool:  slab.New[timerSlot](preReserve),
		cmdMu: lock.NewSpinLock(),
	}
	for i := range m.wheel {
		m.wheel[i] = InvalidTimerId
	}
	return m
}

// CreateTimer 创建一个绑定e的定时器，返回独占句柄。
// 槽位优先从空闲链复用，复用的槽位保留上一代的epoch。
func (m *Manager) CreateTimer(e exec.Executor) *UniqueTimer {
	if e == nil {
		panic("timerkit: create timer with nil executor")
	}
	m.cmdMu.Lock()
	p, s := m.pool.Alloc()
	s.id = TimerId(p)
	s.mgr = m
	s.state.Store(int32(stateStopped))
	s.duration.Store(0)
	s.callback = nil
	s.exec = e
	s.bucket = -1
	s.wheelPrev = InvalidTimerId
	s.wheelNext = InvalidTimerId
	m.cmdMu.Unlock()
	return &UniqueTimer{h: s}
}

// MaxDuration 支持的最大时长（tick数）
func (m *Manager) MaxDuration() int64 {
	return int64(len(m.wheel))
}

// CurrentTick 当前逻辑tick
func (m *Manager) CurrentTick() uint64 {
	return m.curTick.Load()
}

// NumTimers 当前存活（未销毁）的定时器数
func (m *Manager) NumTimers() int {
	m.cmdMu.Lock()
	n := m.pool.Len()
	m.cmdMu.Unlock()
	return n
}

// NumRunning 正在计时的定时器数，反映的是上一次Tick之后的状态
func (m *Manager) NumRunning() int {
	return int(m.numRunning.Load())
}

// PoolSize 槽位存储的总容量，只增不减
func (m *Manager) PoolSize() int {
	m.cmdMu.Lock()
	n := m.pool.Cap()
	m.cmdMu.Unlock()
	return n
}

func (m *Manager) pushCmd(c timerCmd) {
	m.cmdMu.Lock()
	m.pendingCmds = append(m.pendingCmds, c)
	n := len(m.pendingCmds)
	m.cmdMu.Unlock()
	if n == cmdBacklogWarn {
		mlog.Warnf("timer[%s] %d pending commands, tick driver stalled?", m.inst, n)
	}
}

// Tick 前进一个逻辑tick：排空命令队列、推进时间、触发到期。
// 必须由唯一的外部驱动串行调用，不可并发不可重入。
func (m *Manager) Tick() {
	// 整批换出待处理命令，生产者只会被这一小段临界区挡住
	m.cmdMu.Lock()
	m.pendingCmds, m.drainedCmds = m.drainedCmds[:0], m.pendingCmds
	m.view = m.pool.View()
	m.cmdMu.Unlock()

	// 锁外按全局入队顺序应用
	for i := range m.drainedCmds {
		c := &m.drainedCmds[i]
		s := m.view.Get(int(c.id))
		if s.epoch.Load() != c.epoch {
			// 槽位已换代，旧命令静默丢弃
			mlog.Tracef("timer[%s] drop stale cmd, id:%d epoch:%d action:%d", m.inst, c.id, c.epoch, c.action)
			continue
		}
		switch c.action {
		case cmdRun:
			m.startTimer(s, c.duration)
		case cmdStop:
			m.stopTimer(s, false)
		case cmdDestroy:
			m.destroyTimer(s)
		}
	}

	now := m.curTick.Add(1)

	// 扫描新tick对应的bucket。时长上限等于轮容量，
	// 所以此刻还挂在链上的槽位deadline必然就是now，全部触发
	b := int32(now % uint64(len(m.wheel)))
	for id := m.wheel[b]; id != InvalidTimerId; {
		s := m.view.Get(int(id))
		id = s.wheelNext
		m.stopTimer(s, true)
	}
}

func (m *Manager) startTimer(s *timerSlot, d int64) {
	if timerState(s.state.Load()) == stateRunning {
		// 重复装定：先摘下，按新时长重挂
		m.unlink(s)
		m.numRunning.Add(-1)
	}
	s.deadline = m.curTick.Load() + uint64(d)
	s.state.Store(int32(stateRunning))
	m.link(s, int32(s.deadline%uint64(len(m.wheel))))
	m.numRunning.Add(1)
	mlog.Tracef("timer[%s] arm id:%d dur:%d deadline:%d", m.inst, s.id, d, s.deadline)
}

func (m *Manager) stopTimer(s *timerSlot, expired bool) {
	if timerState(s.state.Load()) != stateRunning {
		return
	}
	m.unlink(s)
	m.numRunning.Add(-1)
	if !expired {
		s.state.Store(int32(stateStopped))
		return
	}
	s.state.Store(int32(stateExpired))
	m.cmdMu.Lock()
	cb, e := s.callback, s.exec
	m.cmdMu.Unlock()
	if cb == nil {
		return
	}
	id := s.id
	mlog.Tracef("timer[%s] expire id:%d tick:%d", m.inst, id, m.curTick.Load())
	if err := e.Execute(func() { cb(id) }); err != nil {
		mlog.Errorf("timer[%s] dispatch expiry of id:%d failed: %v", m.inst, id, err)
	}
}

func (m *Manager) destroyTimer(s *timerSlot) {
	if timerState(s.state.Load()) == stateRunning {
		m.unlink(s)
		m.numRunning.Add(-1)
	}
	s.epoch.Add(1) // 换代，还在途的旧命令从此全部失效
	s.state.Store(int32(stateStopped))
	s.duration.Store(0)
	m.cmdMu.Lock()
	s.callback = nil
	s.exec = nil
	m.pool.Free(int(s.id))
	m.cmdMu.Unlock()
}

func (m *Manager) link(s *timerSlot, b int32) {
	s.bucket = b
	s.wheelPrev = InvalidTimerId
	s.wheelNext = m.wheel[b]
	if s.wheelNext != InvalidTimerId {
		m.view.Get(int(s.wheelNext)).wheelPrev = s.id
	}
	m.wheel[b] = s.id
}

func (m *Manager) unlink(s *timerSlot) {
	if s.bucket < 0 {
		return
	}
	if s.wheelPrev != InvalidTimerId {
		m.view.Get(int(s.wheelPrev)).wheelNext = s.wheelNext
	} else {
		m.wheel[s.bucket] = s.wheelNext
	}
	if s.wheelNext != InvalidTimerId {
		m.view.Get(int(s.wheelNext)).wheelPrev = s.wheelPrev
	}
	s.bucket = -1
	s.wheelPrev = InvalidTimerId
	s.wheelNext = InvalidTimerId
}
