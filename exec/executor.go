package exec

// Executor 接收一个任务做异步执行。定时器到期回调经由它派发，
// 派发失败如何处理是各实现自己的契约
type Executor interface {
	Execute(task func()) error
}

// Inline 在调用者线程同步执行，用于测试和需要确定性派发的场合
type Inline struct{}

func (Inline) Execute(task func()) error {
	task()
	return nil
}
