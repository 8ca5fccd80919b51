// Package anim 提供基于时间的缓动动画引擎
//
// 引擎把一个标量 Value 在固定时长内按缓动函数推向目标值。
// 每一次推进（tick）由 Scheduler 在下一帧调用，时间由 Clock 提供，
// 因此测试可以用 ManualClock + FrameScheduler 确定性地驱动动画。
//
// 同一个 Value 同时最多只有一个进行中的动画，
// 新请求按 Policy 拒绝或显式取消旧动画后重新开始。
package anim

import (
	"fmt"
	"log"
	"math"
)

// Value 可动画的标量（某一轴的缩放、某个旋转角度等）
// 归属于唯一的组件，动画只通过指针修改 Current
type Value struct {
	Name    string
	Current float64
}

// State 单个 Value 的动画状态
type State int

const (
	// StateIdle 没有进行中的动画
	StateIdle State = iota
	// StateAnimating 有一个进行中的动画
	StateAnimating
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Policy 目标值已有动画时的处理策略
type Policy int

const (
	// PolicyReject 新请求不生效，返回 ErrAnimationInFlight
	PolicyReject Policy = iota
	// PolicyRestart 显式取消旧动画（保留当前值），从当前值重新开始
	PolicyRestart
)

// String 返回策略名称（与配置文件中的写法一致）
func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyRestart:
		return "restart"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy 解析配置中的策略名称
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "reject":
		return PolicyReject, nil
	case "restart":
		return PolicyRestart, nil
	default:
		return PolicyReject, fmt.Errorf("unknown animation policy %q (want \"reject\" or \"restart\")", name)
	}
}

// SnapMode 取消动画时对当前值的处理
type SnapMode int

const (
	// SnapNone 保留当前插值结果
	SnapNone SnapMode = iota
	// SnapTarget 直接跳到目标值
	SnapTarget
)

// Request 一次动画请求，创建后不可修改
type Request struct {
	StartValue  float64
	TargetValue float64
	DurationMs  float64
	StartTime   float64
	Easing      EasingFunc
}

// animationPhase 动画生命周期
type animationPhase int

const (
	phaseRunning animationPhase = iota
	phaseCompleted
	phaseCancelled
)

// Animation 一个进行中（或已结束）的动画
type Animation struct {
	engine     *Engine
	value      *Value
	req        Request
	onStep     func()
	onComplete func()
	phase      animationPhase
	ticks      int
}

// Engine 动画引擎
//
// 不持有任何全局状态：每个场景创建自己的 Engine，
// 多个引擎之间互不影响。
type Engine struct {
	clock          Clock
	scheduler      Scheduler
	active         map[*Value]*Animation
	validateEasing bool
}

// NewEngine 创建动画引擎
//
// 参数：
//   - clock: 单调时间源
//   - scheduler: 下一帧回调调度器
func NewEngine(clock Clock, scheduler Scheduler) *Engine {
	return &Engine{
		clock:     clock,
		scheduler: scheduler,
		active:    make(map[*Value]*Animation),
	}
}

// SetEasingValidation 启用/关闭缓动函数校验（调试用途）
func (e *Engine) SetEasingValidation(enabled bool) {
	e.validateEasing = enabled
}

// Start 开始一个动画
//
// 记录开始时间，并立即同步执行第一次 tick，之后每帧执行一次，
// 直到进度到达 1。完成时数值精确等于 target。
// 进度到达 1 的那次 tick 不再做插值，直接落到 target，只触发一次 onStep（一次重绘）。
//
// 参数：
//   - v: 要修改的值
//   - target: 目标值
//   - durationMs: 时长（毫秒），必须 > 0
//   - easing: 缓动函数
//   - policy: v 已有动画时的处理策略
//   - onStep: 每次数值更新后调用（通常触发重绘），可为 nil
//   - onComplete: 完成时调用一次，可为 nil
//
// 返回：
//   - *Animation: 新动画（PolicyReject 冲突时为 nil）
//   - error: 参数无效或被拒绝
func (e *Engine) Start(v *Value, target, durationMs float64, easing EasingFunc, policy Policy, onStep, onComplete func()) (*Animation, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	if !(durationMs > 0) || math.IsInf(durationMs, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDuration, durationMs)
	}
	if easing == nil {
		return nil, ErrNilEasing
	}
	if e.validateEasing {
		if err := ValidateEasing(easing); err != nil {
			return nil, fmt.Errorf("value %q: %w", v.Name, err)
		}
	}

	if existing, ok := e.active[v]; ok {
		if policy == PolicyReject {
			return nil, fmt.Errorf("%w: %q", ErrAnimationInFlight, v.Name)
		}
		log.Printf("[Anim] %s: restarting (previous target %.4f discarded)", v.Name, existing.req.TargetValue)
		existing.Cancel(SnapNone)
	}

	a := &Animation{
		engine: e,
		value:  v,
		req: Request{
			StartValue:  v.Current,
			TargetValue: target,
			DurationMs:  durationMs,
			StartTime:   e.clock.NowMs(),
			Easing:      easing,
		},
		onStep:     onStep,
		onComplete: onComplete,
		phase:      phaseRunning,
	}
	e.active[v] = a

	log.Printf("[Anim] %s: %.4f -> %.4f over %.0fms", v.Name, a.req.StartValue, target, durationMs)
	a.tick()
	return a, nil
}

// StateOf 返回 v 当前的动画状态
func (e *Engine) StateOf(v *Value) State {
	if _, ok := e.active[v]; ok {
		return StateAnimating
	}
	return StateIdle
}

// AnimationOf 返回 v 上进行中的动画
func (e *Engine) AnimationOf(v *Value) (*Animation, bool) {
	a, ok := e.active[v]
	return a, ok
}

// Active 返回进行中的动画数量
func (e *Engine) Active() int {
	return len(e.active)
}

// CancelAll 取消全部进行中的动画
func (e *Engine) CancelAll(mode SnapMode) {
	for _, a := range e.active {
		a.Cancel(mode)
	}
}

// Request 返回动画请求（不可变）
func (a *Animation) Request() Request {
	return a.req
}

// Value 返回被动画的值
func (a *Animation) Value() *Value {
	return a.value
}

// Done 动画是否已结束（完成或取消）
func (a *Animation) Done() bool {
	return a.phase != phaseRunning
}

// Completed 动画是否正常完成
func (a *Animation) Completed() bool {
	return a.phase == phaseCompleted
}

// Cancelled 动画是否被取消
func (a *Animation) Cancelled() bool {
	return a.phase == phaseCancelled
}

// Ticks 返回已执行的 tick 次数（包括最后一次完成 tick）
func (a *Animation) Ticks() int {
	return a.ticks
}

// Progress 根据给定时间计算线性进度，限制在 [0, 1]
func (a *Animation) Progress(nowMs float64) float64 {
	p := (nowMs - a.req.StartTime) / a.req.DurationMs
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Cancel 停止动画，不再调度后续 tick，不调用 onComplete
// 重复调用无效果
func (a *Animation) Cancel(mode SnapMode) {
	if a.phase != phaseRunning {
		return
	}
	a.phase = phaseCancelled
	a.detach()

	if mode == SnapTarget {
		a.value.Current = a.req.TargetValue
		a.step()
	}
	log.Printf("[Anim] %s: cancelled at %.4f", a.value.Name, a.value.Current)
}

// tick 推进一帧
func (a *Animation) tick() {
	// 已完成/已取消动画的迟到回调直接忽略
	if a.phase != phaseRunning {
		return
	}
	a.ticks++

	progress := a.Progress(a.engine.clock.NowMs())
	if progress >= 1 {
		a.complete()
		return
	}

	eased := a.req.Easing(progress)
	a.value.Current = a.req.StartValue + eased*(a.req.TargetValue-a.req.StartValue)
	a.step()

	// onStep 可能取消了本动画
	if a.phase != phaseRunning {
		return
	}

	if err := a.engine.scheduler.Schedule(a.tick); err != nil {
		log.Printf("[Anim] %s: failed to schedule next tick (%v), completing immediately", a.value.Name, err)
		a.complete()
	}
}

// complete 精确落到目标值并通知完成，只执行一次
func (a *Animation) complete() {
	if a.phase != phaseRunning {
		return
	}
	a.phase = phaseCompleted
	a.detach()

	a.value.Current = a.req.TargetValue
	a.step()
	log.Printf("[Anim] %s: completed at %.4f", a.value.Name, a.value.Current)
	if a.onComplete != nil {
		a.onComplete()
	}
}

func (a *Animation) step() {
	if a.onStep != nil {
		a.onStep()
	}
}

// detach 从引擎的活动表中移除（仅当活动表中仍是自己时）
func (a *Animation) detach() {
	if cur, ok := a.engine.active[a.value]; ok && cur == a {
		delete(a.engine.active, a.value)
	}
}
