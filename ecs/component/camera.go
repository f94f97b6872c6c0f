package component

import "github.com/milk9111/watchtower/common"

// Camera is a top-down view over the arena floor. X and Z are the world
// point at the centre of the screen; Zoom is pixels per world unit.
type Camera struct {
	Zoom       float64
	Smoothness float64
	X          float64
	Z          float64
}

var CameraComponent = NewComponent[Camera]()

func (c *Camera) zoom() float64 {
	if c == nil || c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// ToScreen projects a world point onto a screen of size sw by sh. World +Z
// points up the screen.
func (c *Camera) ToScreen(p common.Vec3, sw, sh float64) (float64, float64) {
	var cx, cz float64
	if c != nil {
		cx, cz = c.X, c.Z
	}
	z := c.zoom()
	return sw/2 + (p.X-cx)*z, sh/2 - (p.Z-cz)*z
}

// ToWorld maps a screen point back onto the floor plane at height y.
func (c *Camera) ToWorld(sx, sy, sw, sh, y float64) common.Vec3 {
	var cx, cz float64
	if c != nil {
		cx, cz = c.X, c.Z
	}
	z := c.zoom()
	return common.Vec3{X: cx + (sx-sw/2)/z, Y: y, Z: cz - (sy-sh/2)/z}
}
