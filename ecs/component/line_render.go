package component

import (
	"image/color"

	"github.com/milk9111/watchtower/common"
)

// LineRender is a world-space line drawn by hosts, used for shot trails.
type LineRender struct {
	Start common.Vec3
	End   common.Vec3
	Width float32
	Color color.Color
	Hit   bool
}

var LineRenderComponent = NewComponent[LineRender]()
