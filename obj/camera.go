package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/locomotion/common"
)

// Camera follows the character in the side-view plane and keeps an orbit yaw
// that movement input is relative to. It implements the locomotion heading
// reference.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	// zoom is screen pixels per world unit.
	zoom float64
	off  *ebiten.Image

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64

	yaw       float64
	orbitRate float64
}

// NewCamera creates a camera with the given logical screen size and zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15, orbitRate: math.Pi}
}

// SetZoom updates the camera zoom.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if c.screenW == w && c.screenH == h {
		return
	}
	c.screenW = w
	c.screenH = h
	c.off = nil
}

// Forward returns the horizontal view direction. A yaw of zero looks down +Z.
func (c *Camera) Forward() common.Vec3 {
	sin, cos := math.Sincos(c.yaw)
	return common.Vec3{X: sin, Z: cos}
}

func (c *Camera) Yaw() float64 {
	return c.yaw
}

func (c *Camera) SetYaw(yaw float64) {
	c.yaw = common.WrapAngle(yaw)
}

// Orbit turns the camera by dir (-1, 0 or 1) times the orbit rate.
func (c *Camera) Orbit(dir, dt float64) {
	if dir == 0 {
		return
	}
	c.SetYaw(c.yaw + dir*c.orbitRate*dt)
}

// Update moves the camera toward the target world coordinate. Call from the
// fixed-rate Update loop to get consistent smoothing.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
		return
	}
	c.PosX += (targetX - c.PosX) * c.smooth
	c.PosY += (targetY - c.PosY) * c.smooth
}

// SnapTo immediately centers the camera on the given world coordinate.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
}

// WorldToScreen maps a side-view world point (Y up) to screen pixels (Y down).
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	sx := (x-c.PosX)*c.zoom + float64(c.screenW)/2
	sy := float64(c.screenH)/2 - (y-c.PosY)*c.zoom
	return sx, sy
}

// Render clears the offscreen view, lets drawWorld fill it and copies it to
// screen.
func (c *Camera) Render(screen *ebiten.Image, drawWorld func(world *ebiten.Image)) {
	if c.off == nil {
		c.off = ebiten.NewImage(c.screenW, c.screenH)
	}

	c.off.Clear()
	if drawWorld != nil {
		drawWorld(c.off)
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(c.off, op)
}
