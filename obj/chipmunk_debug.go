package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

// DebugDraw renders the chipmunk shapes through the camera. The character is
// tinted with characterColor so the host can color it by locomotion state.
func (cw *CollisionWorld) DebugDraw(screen *ebiten.Image, cam *Camera, characterColor color.Color) {
	if cw == nil || cw.space == nil || screen == nil || cam == nil {
		return
	}
	d := &chipmunkDrawer{screen: screen, cam: cam, character: characterColor}
	if cw.character != nil {
		d.characterShape = cw.character.shape
	}
	cp.DrawSpace(cw.space, d)
}

type chipmunkDrawer struct {
	screen         *ebiten.Image
	cam            *Camera
	character      color.Color
	characterShape *cp.Shape
}

func (d *chipmunkDrawer) line(a, b cp.Vector, c color.Color) {
	ax, ay := d.cam.WorldToScreen(a.X, a.Y)
	bx, by := d.cam.WorldToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(ax), float32(ay), float32(bx), float32(by), 1, c, false)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.cam.WorldToScreen(pos.X, pos.Y)
	r := radius * d.cam.Zoom()
	vector.StrokeCircle(d.screen, float32(x), float32(y), float32(r), 1, fcolorToRGBA(outline), false)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

// DrawPolygon fills the bounding rectangle (every shape here is an upright
// box) with the shape color and strokes the outline.
func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	minX, minY := d.cam.WorldToScreen(verts[0].X, verts[0].Y)
	maxX, maxY := minX, minY
	for i := 1; i < count; i++ {
		x, y := d.cam.WorldToScreen(verts[i].X, verts[i].Y)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	vector.DrawFilledRect(d.screen, float32(minX), float32(minY), float32(maxX-minX), float32(maxY-minY), fcolorToRGBA(fill), false)

	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.cam.WorldToScreen(pos.X, pos.Y)
	vector.DrawFilledCircle(d.screen, float32(x), float32(y), float32(size/2), fcolorToRGBA(fill), false)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return rgbaToFColor(colornames.Whitesmoke)
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape == d.characterShape && d.character != nil {
		return rgbaToFColor(d.character)
	}
	if shape != nil && shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return rgbaToFColor(colornames.Slategray)
	}
	return rgbaToFColor(colornames.Orchid)
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return rgbaToFColor(colornames.Lightgray)
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return rgbaToFColor(colornames.Red)
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func rgbaToFColor(c color.Color) cp.FColor {
	r, g, b, a := c.RGBA()
	return cp.FColor{R: float32(r) / 0xffff, G: float32(g) / 0xffff, B: float32(b) / 0xffff, A: float32(a) / 0xffff}
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
