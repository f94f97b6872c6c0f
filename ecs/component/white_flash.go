package component

// WhiteFlash makes an enemy render white while active. Timing is
// tick-based: it blinks every Interval ticks for Frames ticks in total.
type WhiteFlash struct {
	Frames   int
	Interval int
	Timer    int
	On       bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
