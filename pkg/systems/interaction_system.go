package systems

import (
	"errors"
	"log"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/ecs"
)

// InteractionSystem 把点击命中结果转换为颜色切换和动画
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	cubeEntity    ecs.EntityID
	animations    *AnimationSystem
	sink          RenderSink

	lastTarget components.Target
}

// NewInteractionSystem 创建交互系统
func NewInteractionSystem(em *ecs.EntityManager, cubeEntity ecs.EntityID, animations *AnimationSystem, sink RenderSink) *InteractionSystem {
	return &InteractionSystem{
		entityManager: em,
		cubeEntity:    cubeEntity,
		animations:    animations,
		sink:          sink,
	}
}

// LastTarget 返回最近一次激活的目标
func (s *InteractionSystem) LastTarget() components.Target {
	return s.lastTarget
}

// OnTargetActivated 处理一次点击
//
// 命中立方体或手柄：立方体切换为激活颜色，启动旋转（旋转中则忽略），
// 命中手柄时再对手柄对应的轴启动缩放。
// 未命中：恢复未激活颜色并请求重绘，不启动动画。
func (s *InteractionSystem) OnTargetActivated(target components.Target) {
	s.lastTarget = target
	material, hasMaterial := ecs.GetComponent[*components.MaterialComponent](s.entityManager, s.cubeEntity)

	if target == components.TargetNone {
		if hasMaterial {
			material.SetActive(false)
		}
		s.sink.RequestRender()
		return
	}

	if hasMaterial {
		material.SetActive(true)
	}
	s.sink.RequestRender()

	if started, err := s.animations.StartRotation(); err != nil {
		log.Printf("[InteractionSystem] 旋转启动失败: %v", err)
	} else if !started {
		log.Printf("[InteractionSystem] 旋转进行中，忽略本次旋转请求")
	}

	axis, isHandle := target.HandleAxis()
	if !isHandle {
		return
	}
	if _, err := s.animations.StartScale(axis); err != nil {
		if errors.Is(err, anim.ErrAnimationInFlight) {
			log.Printf("[InteractionSystem] %s 轴缩放进行中，忽略", axis)
			return
		}
		log.Printf("[InteractionSystem] 缩放启动失败: %v", err)
	}
}
