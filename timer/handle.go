package timer

import (
	"fmt"
)

// UniqueTimer 独占一个定时器槽位的句柄，Destroy之后作废。
// 查询接口读到的是后端已应用的状态，最多落后一个tick；
// Run/Stop/Destroy只是投递命令，返回时不保证后端已生效。
type UniqueTimer struct {
	h *timerSlot
}

func (t *UniqueTimer) mustSlot() *timerSlot {
	if t.h == nil {
		panic("timerkit: operate on invalid timer")
	}
	return t.h
}

func (t *UniqueTimer) IsValid() bool {
	return t != nil && t.h != nil
}

func (t *UniqueTimer) Id() TimerId {
	if !t.IsValid() {
		return InvalidTimerId
	}
	return t.h.id
}

// IsSet 是否已配置时长
func (t *UniqueTimer) IsSet() bool {
	return t.IsValid() && t.h.duration.Load() > 0
}

func (t *UniqueTimer) IsRunning() bool {
	return t.IsValid() && timerState(t.h.state.Load()) == stateRunning
}

func (t *UniqueTimer) HasExpired() bool {
	return t.IsValid() && timerState(t.h.state.Load()) == stateExpired
}

// Duration 配置的时长（tick数），未设置返回0
func (t *UniqueTimer) Duration() int64 {
	if !t.IsValid() {
		return 0
	}
	return t.h.duration.Load()
}

// Set 配置时长（tick数），下一次Run生效
func (t *UniqueTimer) Set(duration int64) {
	s := t.mustSlot()
	s.duration.Store(duration)
}

// SetWithCallback 配置时长和到期回调，回调带定时器id。
// 回调经executor异步执行，和Stop/Destroy存在既定的竞态：
// 当前tick已判定到期的回调无法撤回，回调内自行校验有效性
func (t *UniqueTimer) SetWithCallback(duration int64, cb func(TimerId)) {
	s := t.mustSlot()
	s.duration.Store(duration)
	s.mgr.cmdMu.Lock()
	s.callback = cb
	s.mgr.cmdMu.Unlock()
}

// Run 按配置的时长开始计时
func (t *UniqueTimer) Run() {
	s := t.mustSlot()
	d := s.duration.Load()
	if d < 1 || d > s.mgr.MaxDuration() {
		panic(fmt.Sprintf("timerkit: run timer %d with invalid duration %d (valid 1..%d)", s.id, d, s.mgr.MaxDuration()))
	}
	s.mgr.pushCmd(timerCmd{id: s.id, epoch: s.epoch.Load(), action: cmdRun, duration: d})
}

// Stop 停止计时，尽力而为（见SetWithCallback的竞态说明）
func (t *UniqueTimer) Stop() {
	s := t.mustSlot()
	s.mgr.pushCmd(timerCmd{id: s.id, epoch: s.epoch.Load(), action: cmdStop})
}

// Destroy 销毁定时器，槽位由后端回收复用。可重复调用，
// 之后Set/Run/Stop都会panic，查询全部返回零值
func (t *UniqueTimer) Destroy() {
	if t == nil || t.h == nil {
		return
	}
	s := t.h
	t.h = nil
	s.mgr.pushCmd(timerCmd{id: s.id, epoch: s.epoch.Load(), action: cmdDestroy})
}
