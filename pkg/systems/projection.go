package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// DrawKind 绘制图元类型
type DrawKind int

const (
	// DrawPolygon 填充多边形（立方体的一个面）
	DrawPolygon DrawKind = iota
	// DrawCircle 填充圆（球体手柄的投影）
	DrawCircle
)

// DrawItem 投影到屏幕空间的图元
type DrawItem struct {
	Kind   DrawKind
	Entity ecs.EntityID

	// Points 多边形顶点（屏幕像素，原点左上）
	Points []mgl64.Vec2

	// Center/Radius 圆心和半径（屏幕像素）
	Center mgl64.Vec2
	Radius float64

	Fill   color.RGBA
	Stroke color.RGBA

	// Depth 观察空间深度，越大越远
	Depth float64
}

// 单位立方体的 8 个顶点
var boxVertices = [8]mgl64.Vec3{
	{-0.5, -0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{0.5, 0.5, -0.5},
	{0.5, -0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{-0.5, 0.5, 0.5},
	{0.5, 0.5, 0.5},
	{0.5, -0.5, 0.5},
}

// 六个面（顶点索引）及其模型空间法线
var boxFaces = [6]struct {
	idx    [4]int
	normal mgl64.Vec3
}{
	{[4]int{0, 1, 2, 3}, mgl64.Vec3{0, 0, -1}},
	{[4]int{0, 1, 5, 4}, mgl64.Vec3{-1, 0, 0}},
	{[4]int{3, 2, 6, 7}, mgl64.Vec3{1, 0, 0}},
	{[4]int{1, 2, 6, 5}, mgl64.Vec3{0, 1, 0}},
	{[4]int{0, 3, 7, 4}, mgl64.Vec3{0, -1, 0}},
	{[4]int{4, 5, 6, 7}, mgl64.Vec3{0, 0, 1}},
}

// BuildDrawList 把场景中可见的网格投影为屏幕图元，按从远到近排序
//
// 立方体做背面剔除，再与手柄一起按深度做画家算法排序。
// 任何顶点落在近平面之后的图元直接丢弃。
func BuildDrawList(em *ecs.EntityManager, cam *components.OrbitCameraComponent, edge color.RGBA) []DrawItem {
	if cam == nil || cam.ViewportWidth <= 0 || cam.ViewportHeight <= 0 {
		return nil
	}

	view := cam.View()
	proj := cam.Projection()
	eye := cam.Eye()
	w, h := cam.ViewportWidth, cam.ViewportHeight

	items := make([]DrawItem, 0, 8)
	entities := ecs.GetEntitiesWith3[*components.TransformComponent, *components.MeshComponent, *components.MaterialComponent](em)
	for _, id := range entities {
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		mesh, _ := ecs.GetComponent[*components.MeshComponent](em, id)
		material, _ := ecs.GetComponent[*components.MaterialComponent](em, id)

		switch mesh.Kind {
		case components.MeshBox:
			items = appendBoxFaces(items, id, transform.ModelMatrix(), view, proj, eye, cam.Near, w, h, material.Color, edge)
		case components.MeshSphere:
			if item, ok := projectSphere(id, transform.Position, mesh.Radius*transform.ScaleX.Current, view, proj, cam, material.Color); ok {
				items = append(items, item)
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Depth > items[j].Depth })
	return items
}

func appendBoxFaces(items []DrawItem, id ecs.EntityID, model, view, proj mgl64.Mat4, eye mgl64.Vec3, near float64, w, h int, fill, edge color.RGBA) []DrawItem {
	var world [8]mgl64.Vec3
	for i, v := range boxVertices {
		world[i] = model.Mul4x1(v.Vec4(1)).Vec3()
	}
	normalMat := model.Mat3().Inv().Transpose()

	for _, face := range boxFaces {
		center := mgl64.Vec3{}
		for _, vi := range face.idx {
			center = center.Add(world[vi])
		}
		center = center.Mul(0.25)

		normal := normalMat.Mul3x1(face.normal)
		if normal.Dot(eye.Sub(center)) <= 0 {
			continue
		}

		points := make([]mgl64.Vec2, 0, 4)
		depth := 0.0
		visible := true
		for _, vi := range face.idx {
			viewPos := view.Mul4x1(world[vi].Vec4(1))
			d := -viewPos.Z()
			if d <= near {
				visible = false
				break
			}
			depth += d
			win := mgl64.Project(world[vi], view, proj, 0, 0, w, h)
			points = append(points, mgl64.Vec2{win.X(), float64(h) - win.Y()})
		}
		if !visible {
			continue
		}

		items = append(items, DrawItem{
			Kind:   DrawPolygon,
			Entity: id,
			Points: points,
			Fill:   fill,
			Stroke: edge,
			Depth:  depth / 4,
		})
	}
	return items
}

func projectSphere(id ecs.EntityID, center mgl64.Vec3, radius float64, view, proj mgl64.Mat4, cam *components.OrbitCameraComponent, fill color.RGBA) (DrawItem, bool) {
	viewPos := view.Mul4x1(center.Vec4(1))
	depth := -viewPos.Z()
	if depth <= cam.Near {
		return DrawItem{}, false
	}

	w, h := cam.ViewportWidth, cam.ViewportHeight
	win := mgl64.Project(center, view, proj, 0, 0, w, h)

	// 透视下球体投影半径近似为 r / (d·tan(fov/2)) 个半屏高
	halfFov := mgl64.DegToRad(cam.FovY) / 2
	screenRadius := radius / (depth * math.Tan(halfFov)) * float64(h) / 2

	return DrawItem{
		Kind:   DrawCircle,
		Entity: id,
		Center: mgl64.Vec2{win.X(), float64(h) - win.Y()},
		Radius: screenRadius,
		Fill:   fill,
		Depth:  depth,
	}, true
}
