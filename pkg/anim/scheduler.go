package anim

// Scheduler 注册一个在下一帧执行的回调（相当于 requestAnimationFrame）
//
// 返回错误表示回调不会被执行，调用方必须自行处理（引擎会直接完成动画，
// 不会让数值停在中途）。
type Scheduler interface {
	Schedule(fn func()) error
}

// FrameScheduler 按帧批量执行回调的调度器
//
// 宿主每帧调用一次 RunPending()。在执行过程中新注册的回调会进入下一批，
// 因此自我重新调度的动画每帧只推进一次。
//
// 与 Ebitengine 的 Update 一样，FrameScheduler 只在单个 goroutine 中使用。
type FrameScheduler struct {
	pending []func()
	frame   uint64
	closed  bool
}

// NewFrameScheduler 创建帧调度器
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		pending: make([]func(), 0, 8),
	}
}

// Schedule 注册下一帧回调
func (s *FrameScheduler) Schedule(fn func()) error {
	if s.closed {
		return ErrSchedulerClosed
	}
	s.pending = append(s.pending, fn)
	return nil
}

// RunPending 执行本帧之前注册的全部回调，返回执行数量
func (s *FrameScheduler) RunPending() int {
	s.frame++
	if len(s.pending) == 0 {
		return 0
	}

	batch := s.pending
	s.pending = make([]func(), 0, len(batch))
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending 返回等待执行的回调数量
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

// Frame 返回已经执行过的帧数
func (s *FrameScheduler) Frame() uint64 {
	return s.frame
}

// Close 关闭调度器并丢弃尚未执行的回调
func (s *FrameScheduler) Close() {
	s.closed = true
	s.pending = nil
}
