package scenes

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/decker502/spincube/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// edgeWidth 立方体棱线宽度（像素）
const edgeWidth = 1.5

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whiteSubImage 用作 DrawTriangles 的纯色纹理
	// 取中间 1 像素，避免线性采样时混入边缘透明像素
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Draw 绘制场景
// 只有画布为脏（或尺寸变化）时才重新光栅化
func (s *CubeScene) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if s.canvas == nil || s.canvas.Bounds().Dx() != w || s.canvas.Bounds().Dy() != h {
		if s.canvas != nil {
			s.canvas.Deallocate()
		}
		s.canvas = ebiten.NewImage(w, h)
		s.dirty = true
	}

	if s.dirty {
		s.rasterize(s.canvas)
		s.dirty = false
		s.renders++
	}

	screen.DrawImage(s.canvas, nil)
}

// rasterize 把场景完整画到 dst
func (s *CubeScene) rasterize(dst *ebiten.Image) {
	dst.Fill(s.background)

	items := systems.BuildDrawList(s.entityManager, s.cameraSystem.Camera(), s.edge)
	for i := range items {
		switch items[i].Kind {
		case systems.DrawPolygon:
			drawPolygon(dst, &items[i])
		case systems.DrawCircle:
			it := &items[i]
			vector.DrawFilledCircle(dst, float32(it.Center.X()), float32(it.Center.Y()), float32(it.Radius), it.Fill, true)
		}
	}

	if s.showHUD && s.hudFace != nil {
		s.drawHUD(dst)
	}
}

// drawPolygon 以两个三角形填充四边形并描边
func drawPolygon(dst *ebiten.Image, it *systems.DrawItem) {
	if len(it.Points) < 3 {
		return
	}

	r := float32(it.Fill.R) / 0xff
	g := float32(it.Fill.G) / 0xff
	b := float32(it.Fill.B) / 0xff
	a := float32(it.Fill.A) / 0xff

	vs := make([]ebiten.Vertex, 0, len(it.Points))
	for _, p := range it.Points {
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(p.X()),
			DstY:   float32(p.Y()),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}

	// 扇形三角化：0-1-2, 0-2-3 ...
	is := make([]uint16, 0, (len(it.Points)-2)*3)
	for i := 1; i+1 < len(it.Points); i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	dst.DrawTriangles(vs, is, whiteSubImage, op)

	for i := range it.Points {
		p := it.Points[i]
		q := it.Points[(i+1)%len(it.Points)]
		vector.StrokeLine(dst, float32(p.X()), float32(p.Y()), float32(q.X()), float32(q.Y()), edgeWidth, it.Stroke, true)
	}
}

// drawHUD 在左上角绘制操作提示和当前缩放
func (s *CubeScene) drawHUD(dst *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 8)
	op.ColorScale.ScaleWithColor(s.edge)
	op.LineSpacing = hudFontSize * 1.4

	text.Draw(dst, s.hudText(), s.hudFace, op)
}

// hudText 返回 HUD 文本
func (s *CubeScene) hudText() string {
	hint := "click cube: spin   click handle: scale axis\ndrag: orbit   wheel: zoom   R: reset view   F11: fullscreen   Esc: quit"
	if s.mobileHint {
		hint = "tap cube: spin   tap handle: scale axis\ndrag: orbit"
	}

	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.cubeEntity)
	if !ok {
		return hint
	}
	status := fmt.Sprintf("scale x=%.3f y=%.3f z=%.3f   rotation=%.2fπ",
		transform.ScaleX.Current, transform.ScaleY.Current, transform.ScaleZ.Current,
		transform.RotationY.Current/math.Pi)
	return hint + "\n" + status
}
