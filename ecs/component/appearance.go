package component

import "image/color"

// Appearance is how hosts draw an entity.
type Appearance struct {
	Color color.Color
	Label string
}

var AppearanceComponent = NewComponent[Appearance]()
