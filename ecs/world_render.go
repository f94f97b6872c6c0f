package ecs

import "github.com/hajimehoshi/ebiten/v2"

// RenderSystem draws ECS entities each frame.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw calls every render-capable system registered on w, followed by any
// extra renderers, in order.
func (w *World) Draw(screen *ebiten.Image, extra ...RenderSystem) {
	if w == nil || screen == nil {
		return
	}
	for _, s := range w.scheduler.Systems() {
		if rs, ok := s.(RenderSystem); ok && rs != nil {
			rs.Draw(w, screen)
		}
	}
	for _, rs := range extra {
		if rs != nil {
			rs.Draw(w, screen)
		}
	}
}
