package timer

import (
	"sync/atomic"

	"github.com/fixkme/timerkit/exec"
)

type TimerId int32

const InvalidTimerId TimerId = -1

type timerState int32

const (
	stateStopped timerState = iota
	stateRunning
	stateExpired
)

type cmdAction int8

const (
	cmdRun cmdAction = iota
	cmdStop
	cmdDestroy
)

// 前端投递给后端的变更命令，epoch是投递时刻观察到的槽位代数
type timerCmd struct {
	id       TimerId
	epoch    uint64
	action   cmdAction
	duration int64
}

// timerSlot 一个定时器的全部状态。
// 前端字段是原子量，任意线程可读，写入只发生在tick线程和cmdMu临界区内；
// deadline和wheel链接只归tick线程。
type timerSlot struct {
	id  TimerId
	mgr *Manager

	// 前端视图
	epoch    atomic.Uint64 // 代数，销毁时+1，挡住在途的旧命令
	state    atomic.Int32
	duration atomic.Int64  // 配置的tick数，0为未设置
	callback func(TimerId) // cmdMu保护
	exec     exec.Executor // 创建时绑定，cmdMu保护

	// 后端视图
	deadline uint64 // 绝对到期tick

	// wheel索引邻接，槽位在bucket冲突链里的前后邻居
	bucket    int32
	wheelPrev TimerId
	wheelNext TimerId
}
