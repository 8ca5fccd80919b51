package systems

import (
	"fmt"
	"log"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/ecs"
)

// RenderSink 接收重绘请求（无参数、可重复调用、幂等）
type RenderSink interface {
	RequestRender()
}

// RenderFunc 让普通函数满足 RenderSink
type RenderFunc func()

// RequestRender 调用函数本身
func (f RenderFunc) RequestRender() { f() }

// AnimationSystem 驱动立方体的旋转和逐轴缩放动画
//
// 每个场景持有自己的 AnimationSystem，旋转门（isRotating）是这里的字段，
// 不是全局变量。
//
// 规则：
//   - 旋转：目标 = 当前角度 + RotationSpeed，线性缓动；旋转进行中再次请求不生效
//   - 缩放：当前 < ScaleTarget 时目标为 ScaleTarget，否则回到 RestScale；
//     缓动 1-(1-p)^k；同一轴动画进行中再次请求按 ScalePolicy 处理
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	engine        *anim.Engine
	cubeEntity    ecs.EntityID
	sink          RenderSink

	cfg         config.AnimationConfig
	scalePolicy anim.Policy
	scaleEasing anim.EasingFunc

	// isRotating 旋转门：开始时置位，完成时清除
	isRotating bool
	rotation   *anim.Animation
}

// NewAnimationSystem 创建动画系统
//
// 参数：
//   - em: 实体管理器
//   - engine: 动画引擎（每个场景一个）
//   - cubeEntity: 拥有 TransformComponent 的立方体实体
//   - cfg: 场景配置
//   - sink: 每次数值变化后的重绘回调
func NewAnimationSystem(em *ecs.EntityManager, engine *anim.Engine, cubeEntity ecs.EntityID, cfg *config.SceneConfig, sink RenderSink) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
		engine:        engine,
		cubeEntity:    cubeEntity,
		sink:          sink,
		cfg:           cfg.Animation,
		scalePolicy:   cfg.ScalePolicy(),
		scaleEasing:   anim.EaseOutPow(cfg.Animation.ScaleEasingExponent),
	}
}

// IsRotating 旋转动画是否进行中
func (s *AnimationSystem) IsRotating() bool {
	return s.isRotating
}

// RotationAnimation 返回最近一次启动的旋转动画（可能已结束）
func (s *AnimationSystem) RotationAnimation() *anim.Animation {
	return s.rotation
}

// StartRotation 开始一整圈旋转
//
// 返回：
//   - bool: 是否真正启动了新动画（旋转进行中返回 false，不创建新的 tick）
//   - error: 立方体不存在或参数无效
func (s *AnimationSystem) StartRotation() (bool, error) {
	if s.isRotating {
		return false, nil
	}

	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.cubeEntity)
	if !ok {
		return false, fmt.Errorf("cube entity %d has no transform", s.cubeEntity)
	}

	target := transform.RotationY.Current + s.cfg.RotationSpeed

	// 先置位：引擎会同步执行第一次 tick
	s.isRotating = true
	a, err := s.engine.Start(&transform.RotationY, target, s.cfg.RotationDurationMs, anim.Linear, anim.PolicyReject,
		s.sink.RequestRender,
		func() {
			s.isRotating = false
			log.Printf("[AnimationSystem] 旋转完成: %.4f rad", transform.RotationY.Current)
		},
	)
	if err != nil {
		s.isRotating = false
		return false, fmt.Errorf("start rotation: %w", err)
	}
	s.rotation = a
	return true, nil
}

// ScaleTargetFor 根据当前缩放计算切换目标
// current < scaleTarget 时放大到 scaleTarget，否则恢复 restScale
func ScaleTargetFor(current, scaleTarget, restScale float64) float64 {
	if current < scaleTarget {
		return scaleTarget
	}
	return restScale
}

// StartScale 在指定轴上开始缩放切换动画
//
// 参数：
//   - axis: 缩放轴
//
// 返回：
//   - *anim.Animation: 新动画；PolicyReject 下已有动画时为 nil
//   - error: 轴非法、立方体不存在或被拒绝（anim.ErrAnimationInFlight）
func (s *AnimationSystem) StartScale(axis components.Axis) (*anim.Animation, error) {
	if !axis.Valid() {
		return nil, fmt.Errorf("invalid axis %v", axis)
	}

	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.cubeEntity)
	if !ok {
		return nil, fmt.Errorf("cube entity %d has no transform", s.cubeEntity)
	}

	value := transform.ScaleValue(axis)
	target := ScaleTargetFor(value.Current, s.cfg.ScaleTarget, s.cfg.RestScale)

	a, err := s.engine.Start(value, target, s.cfg.ScaleDurationMs, s.scaleEasing, s.scalePolicy, s.sink.RequestRender, nil)
	if err != nil {
		return nil, fmt.Errorf("start scale %s: %w", axis, err)
	}
	return a, nil
}

// IsScaling 指定轴是否有进行中的缩放动画
func (s *AnimationSystem) IsScaling(axis components.Axis) bool {
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.cubeEntity)
	if !ok {
		return false
	}
	return s.engine.StateOf(transform.ScaleValue(axis)) == anim.StateAnimating
}
