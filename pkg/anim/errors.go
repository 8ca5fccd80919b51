package anim

import "errors"

var (
	// ErrInvalidDuration 动画时长必须为严格正数（且不能是 NaN/Inf）
	ErrInvalidDuration = errors.New("anim: duration must be strictly positive")

	// ErrNilValue 未提供动画目标值
	ErrNilValue = errors.New("anim: nil value")

	// ErrNilEasing 未提供缓动函数
	ErrNilEasing = errors.New("anim: nil easing function")

	// ErrInvalidEasing 缓动函数不满足 f(0)=0, f(1)=1 或单调性
	ErrInvalidEasing = errors.New("anim: easing function violates boundary or monotonic constraints")

	// ErrAnimationInFlight 在 PolicyReject 下，目标值已有进行中的动画
	ErrAnimationInFlight = errors.New("anim: animation already in flight for value")

	// ErrSchedulerClosed 调度器已关闭，无法再安排下一帧回调
	ErrSchedulerClosed = errors.New("anim: scheduler closed")
)
