package anim

import (
	"fmt"
	"math"
)

// EasingFunc 缓动函数
//
// 接受线性时间进度 p ∈ [0, 1]，返回感知进度 ∈ [0, 1]。
// 要求：单调不减，f(0)=0，f(1)=1。
//
// 参考：https://easings.net/
type EasingFunc func(progress float64) float64

// Linear 线性缓动（匀速）
// 公式：f(t) = t
func Linear(t float64) float64 {
	return t
}

// EaseOutPow 幂次缓出
// 公式：f(t) = 1 - (1-t)^k
//
// k > 1 时开始快、结束慢；k < 1 时曲线形状相反（开始慢、结束时陡然到位）。
// 缩放动画默认使用 k = 0.5，公式按原样保留。
func EaseOutPow(k float64) EasingFunc {
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, k)
	}
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（用于镜头复位）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// validationSamples 单调性检查的采样数
const validationSamples = 64

// easingTolerance 边界检查允许的浮点误差
const easingTolerance = 1e-9

// ValidateEasing 检查缓动函数是否满足边界条件和单调性
//
// 只在配置启用 validateEasing 时由引擎调用（调试用途），
// 正常运行路径不做此检查。
//
// 返回：
//   - error: 不满足约束时返回包装了 ErrInvalidEasing 的错误
func ValidateEasing(fn EasingFunc) error {
	if fn == nil {
		return ErrNilEasing
	}

	if v := fn(0); math.Abs(v) > easingTolerance {
		return fmt.Errorf("%w: f(0) = %v", ErrInvalidEasing, v)
	}
	if v := fn(1); math.Abs(v-1) > easingTolerance {
		return fmt.Errorf("%w: f(1) = %v", ErrInvalidEasing, v)
	}

	prev := fn(0)
	for i := 1; i <= validationSamples; i++ {
		p := float64(i) / validationSamples
		v := fn(p)
		if math.IsNaN(v) {
			return fmt.Errorf("%w: f(%v) is NaN", ErrInvalidEasing, p)
		}
		if v < prev-easingTolerance {
			return fmt.Errorf("%w: not monotonic at p=%v (%v < %v)", ErrInvalidEasing, p, v, prev)
		}
		prev = v
	}
	return nil
}
