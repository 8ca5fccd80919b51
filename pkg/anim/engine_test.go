package anim

import (
	"errors"
	"math"
	"testing"
)

// newTestEngine 创建使用手动时钟和帧调度器的引擎
func newTestEngine() (*Engine, *ManualClock, *FrameScheduler) {
	clock := NewManualClock(0)
	sched := NewFrameScheduler()
	return NewEngine(clock, sched), clock, sched
}

// advanceFrame 推进时间并执行一帧
func advanceFrame(clock *ManualClock, sched *FrameScheduler, deltaMs float64) {
	clock.Advance(deltaMs)
	sched.RunPending()
}

// TestStart_InvalidDuration 测试非正时长立即失败
func TestStart_InvalidDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
	}{
		{"零", 0},
		{"负数", -100},
		{"NaN", math.NaN()},
		{"正无穷", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, sched := newTestEngine()
			v := &Value{Name: "scale.x", Current: 1}

			a, err := e.Start(v, 1.5, tt.duration, Linear, PolicyReject, nil, nil)
			if !errors.Is(err, ErrInvalidDuration) {
				t.Fatalf("Start() error = %v, want ErrInvalidDuration", err)
			}
			if a != nil {
				t.Error("Start() should return nil animation on error")
			}
			if v.Current != 1 {
				t.Errorf("value modified on failed start: %v", v.Current)
			}
			if sched.Pending() != 0 || e.Active() != 0 {
				t.Error("failed start must not schedule anything")
			}
		})
	}
}

// TestStart_NilArguments 测试空值和空缓动函数
func TestStart_NilArguments(t *testing.T) {
	e, _, _ := newTestEngine()

	if _, err := e.Start(nil, 1, 100, Linear, PolicyReject, nil, nil); !errors.Is(err, ErrNilValue) {
		t.Errorf("nil value: got %v, want ErrNilValue", err)
	}
	if _, err := e.Start(&Value{}, 1, 100, nil, PolicyReject, nil, nil); !errors.Is(err, ErrNilEasing) {
		t.Errorf("nil easing: got %v, want ErrNilEasing", err)
	}
}

// TestScaleScenario 缩放场景：1.0 -> 1.5，1000ms，p -> 1-(1-p)^0.5
func TestScaleScenario(t *testing.T) {
	e, clock, sched := newTestEngine()
	v := &Value{Name: "scale.x", Current: 1.0}

	steps := 0
	completions := 0
	_, err := e.Start(v, 1.5, 1000, EaseOutPow(0.5), PolicyRestart,
		func() { steps++ },
		func() { completions++ },
	)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// elapsed = 0ms
	if v.Current != 1.0 {
		t.Errorf("at 0ms: got %v, want 1.0", v.Current)
	}
	if steps != 1 {
		t.Errorf("first tick should run synchronously, steps = %d", steps)
	}

	// elapsed = 500ms
	advanceFrame(clock, sched, 500)
	want := 1.0 + (1-math.Pow(0.5, 0.5))*0.5
	if math.Abs(v.Current-want) > 1e-9 {
		t.Errorf("at 500ms: got %v, want %v", v.Current, want)
	}
	if math.Abs(v.Current-1.1465) > 1e-3 {
		t.Errorf("at 500ms: got %v, want ≈1.1465", v.Current)
	}

	// elapsed = 1000ms
	advanceFrame(clock, sched, 500)
	if v.Current != 1.5 {
		t.Errorf("at 1000ms: got %v, want exactly 1.5", v.Current)
	}
	if completions != 1 {
		t.Errorf("onComplete called %d times, want 1", completions)
	}
	if e.StateOf(v) != StateIdle {
		t.Errorf("state after completion = %v, want idle", e.StateOf(v))
	}
	if sched.Pending() != 0 {
		t.Errorf("no tick should be pending after completion, got %d", sched.Pending())
	}
}

// TestMonotonicConvergence 测试数值单调趋近目标并精确落点
func TestMonotonicConvergence(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		target   float64
		duration float64
		easing   EasingFunc
		frameMs  float64
	}{
		{"递增-缓出0.5", 1.0, 1.5, 1000, EaseOutPow(0.5), 16},
		{"递减-缓出0.5", 1.5, 1.0, 1000, EaseOutPow(0.5), 16},
		{"递增-线性", 0, 2 * math.Pi, 1000, Linear, 17},
		{"递减-三次缓出", 10, -3, 250, EaseOutCubic, 33},
		{"帧间隔大于时长", 0, 1, 10, Linear, 50},
		{"不整除的时长", 0.1, 0.7, 333.3, EaseOutPow(2), 16.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock, sched := newTestEngine()
			v := &Value{Name: "v", Current: tt.start}

			samples := []float64{}
			a, err := e.Start(v, tt.target, tt.duration, tt.easing, PolicyReject,
				func() { samples = append(samples, v.Current) }, nil)
			if err != nil {
				t.Fatalf("Start() error: %v", err)
			}

			for i := 0; i < 1000 && !a.Done(); i++ {
				advanceFrame(clock, sched, tt.frameMs)
			}
			if !a.Completed() {
				t.Fatal("animation did not complete")
			}

			increasing := tt.target > tt.start
			for i := 1; i < len(samples); i++ {
				if increasing && samples[i] < samples[i-1] {
					t.Fatalf("sample %d decreased: %v -> %v", i, samples[i-1], samples[i])
				}
				if !increasing && samples[i] > samples[i-1] {
					t.Fatalf("sample %d increased: %v -> %v", i, samples[i-1], samples[i])
				}
			}

			if last := samples[len(samples)-1]; last != tt.target {
				t.Errorf("final sample = %v, want exactly %v", last, tt.target)
			}
			if v.Current != tt.target {
				t.Errorf("final value = %v, want exactly %v", v.Current, tt.target)
			}
		})
	}
}

// TestExactSnapAfterLateFrame 测试超过时长后的帧精确落点
func TestExactSnapAfterLateFrame(t *testing.T) {
	e, clock, sched := newTestEngine()
	// 0.1 + 0.2 的插值会产生浮点误差，落点必须仍然精确
	v := &Value{Name: "v", Current: 0.1}

	if _, err := e.Start(v, 0.3, 1000, Linear, PolicyReject, nil, nil); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	advanceFrame(clock, sched, 999.999)
	advanceFrame(clock, sched, 5000)

	if math.Float64bits(v.Current) != math.Float64bits(0.3) {
		t.Errorf("value = %v (bits %x), want bit-exact 0.3", v.Current, math.Float64bits(v.Current))
	}
}

// TestFinalTickStepsOnce 测试进度到达 1 的 tick 只触发一次 onStep，且此时已落到目标值
func TestFinalTickStepsOnce(t *testing.T) {
	e, clock, sched := newTestEngine()
	v := &Value{Name: "v", Current: 1}

	var seen []float64
	onStep := func() { seen = append(seen, v.Current) }
	if _, err := e.Start(v, 1.5, 1000, EaseOutPow(0.5), PolicyReject, onStep, nil); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	advanceFrame(clock, sched, 500)
	before := len(seen)

	advanceFrame(clock, sched, 600)
	if got := len(seen) - before; got != 1 {
		t.Fatalf("final tick fired onStep %d times, want 1", got)
	}
	if seen[len(seen)-1] != 1.5 {
		t.Errorf("onStep saw %v on the final tick, want 1.5", seen[len(seen)-1])
	}
}

// TestIdempotentCompletion 测试完成路径只生效一次
func TestIdempotentCompletion(t *testing.T) {
	e, clock, sched := newTestEngine()
	v := &Value{Name: "v", Current: 0}

	completions := 0
	a, err := e.Start(v, 1, 100, Linear, PolicyReject, nil, func() { completions++ })
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	advanceFrame(clock, sched, 200)

	if completions != 1 {
		t.Fatalf("onComplete called %d times, want 1", completions)
	}

	// 外部修改值后，再次走完成路径不能改回去
	v.Current = 42
	a.complete()
	a.tick()
	a.Cancel(SnapTarget)

	if v.Current != 42 {
		t.Errorf("completion path altered value after finishing: %v", v.Current)
	}
	if completions != 1 {
		t.Errorf("onComplete double-invoked: %d", completions)
	}
	if !a.Completed() || a.Cancelled() {
		t.Error("animation should stay completed")
	}
}

// TestPolicyReject 测试拒绝策略：原动画不受影响
func TestPolicyReject(t *testing.T) {
	e, clock, sched := newTestEngine()
	v := &Value{Name: "rotation.y", Current: 0}

	first, err := e.Start(v, 2*math.Pi, 1000, Linear, PolicyReject, nil, nil)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	advanceFrame(clock, sched, 100)

	second, err := e.Start(v, 4*math.Pi, 500, Linear, PolicyReject, nil, nil)
	if !errors.Is(err, ErrAnimationInFlight) {
		t.Fatalf("second Start() error = %v, want ErrAnimationInFlight", err)
	}
	if second != nil {
		t.Error("rejected start should return nil animation")
	}
	if sched.Pending() != 1 {
		t.Errorf("pending ticks = %d, want 1", sched.Pending())
	}

	req := first.Request()
	if req.TargetValue != 2*math.Pi || req.DurationMs != 1000 {
		t.Errorf("original request changed: %+v", req)
	}

	advanceFrame(clock, sched, 900)
	if v.Current != 2*math.Pi {
		t.Errorf("final = %v, want 2π", v.Current)
	}
}

// TestPolicyRestart 测试显式取消后重新开始
func TestPolicyRestart(t *testing.T) {
	e, clock, sched := newTestEngine()
	v := &Value{Name: "scale.y", Current: 1.0}

	firstCompleted := 0
	first, err := e.Start(v, 1.5, 1000, Linear, PolicyRestart, nil, func() { firstCompleted++ })
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	advanceFrame(clock, sched, 500)
	mid := v.Current

	second, err := e.Start(v, 1.0, 1000, Linear, PolicyRestart, nil, nil)
	if err != nil {
		t.Fatalf("restart error: %v", err)
	}
	if !first.Cancelled() {
		t.Error("first animation should be cancelled")
	}
	if second.Request().StartValue != mid {
		t.Errorf("restart start value = %v, want %v", second.Request().StartValue, mid)
	}
	if got, _ := e.AnimationOf(v); got != second {
		t.Error("active animation should be the new one")
	}

	for i := 0; i < 10; i++ {
		advanceFrame(clock, sched, 200)
	}
	if v.Current != 1.0 {
		t.Errorf("final = %v, want 1.0", v.Current)
	}
	if firstCompleted != 0 {
		t.Error("cancelled animation must not call onComplete")
	}
	if e.Active() != 0 {
		t.Errorf("active = %d, want 0", e.Active())
	}
}

// TestCancel 测试两种取消方式
func TestCancel(t *testing.T) {
	tests := []struct {
		name      string
		mode      SnapMode
		wantFinal float64
	}{
		{"保留当前值", SnapNone, 0.5},
		{"跳到目标", SnapTarget, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock, sched := newTestEngine()
			v := &Value{Name: "v", Current: 0}

			completed := false
			a, _ := e.Start(v, 1, 1000, Linear, PolicyReject, nil, func() { completed = true })
			advanceFrame(clock, sched, 500)

			a.Cancel(tt.mode)
			a.Cancel(tt.mode)

			advanceFrame(clock, sched, 1000)
			if v.Current != tt.wantFinal {
				t.Errorf("value = %v, want %v", v.Current, tt.wantFinal)
			}
			if completed {
				t.Error("onComplete must not run after cancel")
			}
			if e.StateOf(v) != StateIdle {
				t.Error("value should be idle after cancel")
			}
		})
	}
}

// TestCancelAll 测试批量取消
func TestCancelAll(t *testing.T) {
	e, _, _ := newTestEngine()
	x := &Value{Name: "x", Current: 0}
	y := &Value{Name: "y", Current: 0}

	e.Start(x, 1, 100, Linear, PolicyReject, nil, nil)
	e.Start(y, 1, 100, Linear, PolicyReject, nil, nil)
	if e.Active() != 2 {
		t.Fatalf("active = %d, want 2", e.Active())
	}

	e.CancelAll(SnapTarget)
	if e.Active() != 0 {
		t.Errorf("active = %d after CancelAll, want 0", e.Active())
	}
	if x.Current != 1 || y.Current != 1 {
		t.Errorf("values not snapped: x=%v y=%v", x.Current, y.Current)
	}
}

// TestScheduleFailureCompletes 测试调度失败时不会停在中途
func TestScheduleFailureCompletes(t *testing.T) {
	e, _, sched := newTestEngine()
	sched.Close()

	v := &Value{Name: "v", Current: 1}
	completions := 0
	a, err := e.Start(v, 1.5, 1000, Linear, PolicyReject, nil, func() { completions++ })
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if !a.Completed() {
		t.Error("animation should complete when the next tick cannot be scheduled")
	}
	if v.Current != 1.5 || completions != 1 {
		t.Errorf("value = %v, completions = %d; want 1.5, 1", v.Current, completions)
	}
}

// TestIndependentValuesInterleave 测试不同值的动画互不影响
func TestIndependentValuesInterleave(t *testing.T) {
	e, clock, sched := newTestEngine()
	scaleX := &Value{Name: "scale.x", Current: 1}
	rotY := &Value{Name: "rotation.y", Current: 0}

	e.Start(scaleX, 1.5, 1000, EaseOutPow(0.5), PolicyRestart, nil, nil)
	advanceFrame(clock, sched, 250)
	e.Start(rotY, 2*math.Pi, 1000, Linear, PolicyReject, nil, nil)

	for i := 0; i < 20; i++ {
		advanceFrame(clock, sched, 100)
	}
	if scaleX.Current != 1.5 || rotY.Current != 2*math.Pi {
		t.Errorf("scale.x = %v, rotation.y = %v", scaleX.Current, rotY.Current)
	}
}

// TestStartWithEasingValidation 测试调试模式下的缓动函数校验
func TestStartWithEasingValidation(t *testing.T) {
	e, _, _ := newTestEngine()
	e.SetEasingValidation(true)

	bad := func(p float64) float64 { return 1 - p }
	if _, err := e.Start(&Value{Name: "v"}, 1, 100, bad, PolicyReject, nil, nil); !errors.Is(err, ErrInvalidEasing) {
		t.Errorf("got %v, want ErrInvalidEasing", err)
	}
	if _, err := e.Start(&Value{Name: "v"}, 1, 100, EaseOutPow(0.5), PolicyReject, nil, nil); err != nil {
		t.Errorf("valid easing rejected: %v", err)
	}
}

// TestParsePolicy 测试策略解析
func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("reject"); err != nil || p != PolicyReject {
		t.Errorf("reject: got %v, %v", p, err)
	}
	if p, err := ParsePolicy("restart"); err != nil || p != PolicyRestart {
		t.Errorf("restart: got %v, %v", p, err)
	}
	if _, err := ParsePolicy("queue"); err == nil {
		t.Error("unknown policy should fail")
	}
}
