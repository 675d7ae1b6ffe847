package errs

const (
	ErrCode_OK        = 0
	ErrCode_Unknown   = 1
	ErrCode_Closed    = 2
	ErrCode_QueueFull = 3
)

var (
	Unknown   = CreateCodeError(ErrCode_Unknown, "UNKNOWN")
	Closed    = CreateCodeError(ErrCode_Closed, "CLOSED")
	QueueFull = CreateCodeError(ErrCode_QueueFull, "QUEUE_FULL")
)
