package components

// MeshKind 网格类型
type MeshKind int

const (
	// MeshBox 单位立方体（边长 1，中心在原点）
	MeshBox MeshKind = iota
	// MeshSphere 球体，半径取 MeshComponent.Radius
	MeshSphere
)

// MeshComponent 描述实体的几何形状
type MeshComponent struct {
	Kind MeshKind

	// Radius 球体半径（仅 MeshSphere）
	Radius float64

	// Segments 球体分段数（渲染轮廓用）
	Segments int
}
