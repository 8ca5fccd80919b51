package entities

import (
	"fmt"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// NewCubeEntity 创建立方体实体
// 立方体位于原点，初始缩放为 RestScale，颜色为未激活颜色
//
// 参数:
//   - em: 实体管理器
//   - cfg: 场景配置
//
// 返回:
//   - ecs.EntityID: 立方体实体ID
//   - error: 参数无效
func NewCubeEntity(em *ecs.EntityManager, cfg *config.SceneConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("scene config cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransformComponent("cube", mgl64.Vec3{}, cfg.Animation.RestScale))
	ecs.AddComponent(em, id, &components.MeshComponent{Kind: components.MeshBox})
	ecs.AddComponent(em, id, &components.MaterialComponent{
		Color:         config.MustColor(cfg.Colors.Inactive),
		ActiveColor:   config.MustColor(cfg.Colors.Active),
		InactiveColor: config.MustColor(cfg.Colors.Inactive),
	})
	ecs.AddComponent(em, id, &components.PickableComponent{Target: components.TargetCube})
	return id, nil
}

// NewHandleEntity 创建轴向缩放手柄
// 手柄是位于 axis 方向 Offset 处的小球，不随立方体旋转
func NewHandleEntity(em *ecs.EntityManager, cfg *config.SceneConfig, axis components.Axis) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("scene config cannot be nil")
	}
	if !axis.Valid() {
		return 0, fmt.Errorf("invalid handle axis %v", axis)
	}

	var hex string
	switch axis {
	case components.AxisX:
		hex = cfg.Handles.ColorX
	case components.AxisY:
		hex = cfg.Handles.ColorY
	default:
		hex = cfg.Handles.ColorZ
	}
	c := config.MustColor(hex)

	id := em.CreateEntity()
	position := axis.Unit().Mul(cfg.Handles.Offset)
	ecs.AddComponent(em, id, components.NewTransformComponent("handle."+axis.String(), position, 1))
	ecs.AddComponent(em, id, &components.MeshComponent{
		Kind:     components.MeshSphere,
		Radius:   cfg.Handles.Radius,
		Segments: cfg.Handles.Segments,
	})
	ecs.AddComponent(em, id, &components.MaterialComponent{Color: c, ActiveColor: c, InactiveColor: c})
	ecs.AddComponent(em, id, &components.HandleComponent{Axis: axis})
	ecs.AddComponent(em, id, &components.PickableComponent{Target: components.HandleTarget(axis)})
	return id, nil
}

// NewCameraEntity 创建轨道镜头实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 场景配置
//   - width, height: 初始视口尺寸
func NewCameraEntity(em *ecs.EntityManager, cfg *config.SceneConfig, width, height int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("scene config cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.OrbitCameraComponent{
		Yaw:            anim.Value{Name: "camera.yaw", Current: mgl64.DegToRad(cfg.Camera.YawDegrees)},
		Pitch:          anim.Value{Name: "camera.pitch", Current: mgl64.DegToRad(cfg.Camera.PitchDegrees)},
		Distance:       anim.Value{Name: "camera.distance", Current: cfg.Camera.Distance},
		FovY:           cfg.Camera.FovDegrees,
		Near:           cfg.Camera.Near,
		Far:            cfg.Camera.Far,
		ViewportWidth:  width,
		ViewportHeight: height,
	})
	return id, nil
}
