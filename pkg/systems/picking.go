package systems

import (
	"fmt"
	"math"

	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// Ray 世界坐标射线，Dir 为单位向量
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At 返回射线上参数 t 处的点
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// ScreenRay 根据屏幕坐标（像素，原点左上）构造拾取射线
//
// 通过 mgl64.UnProject 分别反投影近平面和远平面上的点。
func ScreenRay(cam *components.OrbitCameraComponent, x, y float64) (Ray, error) {
	w, h := cam.ViewportWidth, cam.ViewportHeight
	if w <= 0 || h <= 0 {
		return Ray{}, fmt.Errorf("invalid viewport %dx%d", w, h)
	}

	view := cam.View()
	proj := cam.Projection()

	// 窗口坐标系 Y 轴向上
	winY := float64(h) - y
	near, err := mgl64.UnProject(mgl64.Vec3{x, winY, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, fmt.Errorf("unproject near: %w", err)
	}
	far, err := mgl64.UnProject(mgl64.Vec3{x, winY, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, fmt.Errorf("unproject far: %w", err)
	}

	dir := far.Sub(near)
	if dir.Len() == 0 {
		return Ray{}, fmt.Errorf("degenerate ray at (%.1f, %.1f)", x, y)
	}
	return Ray{Origin: near, Dir: dir.Normalize()}, nil
}

// IntersectBox 射线与单位立方体（[-0.5, 0.5]³ 经 model 变换）求交
//
// 在模型空间做 slab 测试。方向向量不归一化，所以返回的 t 与世界空间射线参数一致。
//
// 返回：
//   - float64: 最近交点的射线参数
//   - bool: 是否相交
func (r Ray) IntersectBox(model mgl64.Mat4) (float64, bool) {
	inv := model.Inv()
	if inv == (mgl64.Mat4{}) {
		return 0, false
	}
	o := inv.Mul4x1(r.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(r.Dir.Vec4(0)).Vec3()

	tMin, tMax := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < -0.5 || o[i] > 0.5 {
				return 0, false
			}
			continue
		}
		t1 := (-0.5 - o[i]) / d[i]
		t2 := (0.5 - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		// 射线起点在立方体内部
		return tMax, true
	}
	return tMin, true
}

// IntersectSphere 射线与球体求交
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit 拾取结果
type Hit struct {
	Entity   ecs.EntityID
	Target   components.Target
	Distance float64
}

// Pick 返回射线命中的最近可拾取实体
//
// 遍历同时拥有 PickableComponent、TransformComponent、MeshComponent 的实体，
// 与 three.js 的 intersectObjects 一样取距离最近的一个。
func Pick(em *ecs.EntityManager, ray Ray) (Hit, bool) {
	best := Hit{Target: components.TargetNone, Distance: math.Inf(1)}
	found := false

	entities := ecs.GetEntitiesWith3[*components.PickableComponent, *components.TransformComponent, *components.MeshComponent](em)
	for _, id := range entities {
		pickable, _ := ecs.GetComponent[*components.PickableComponent](em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		mesh, _ := ecs.GetComponent[*components.MeshComponent](em, id)

		var t float64
		var ok bool
		switch mesh.Kind {
		case components.MeshBox:
			t, ok = ray.IntersectBox(transform.ModelMatrix())
		case components.MeshSphere:
			t, ok = ray.IntersectSphere(transform.Position, mesh.Radius*transform.ScaleX.Current)
		}

		if ok && t < best.Distance {
			best = Hit{Entity: id, Target: pickable.Target, Distance: t}
			found = true
		}
	}

	if !found {
		return Hit{Target: components.TargetNone}, false
	}
	return best, true
}
