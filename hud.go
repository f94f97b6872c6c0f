package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/watchtower/arena"
	"github.com/milk9111/watchtower/common"
)

var hudTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// HUD shows the weapon readout and score along the top of the screen.
type HUD struct {
	UI *ebitenui.UI

	weapon *widget.Text
	ammo   *widget.Text
	score  *widget.Text
	reload *widget.Text
}

func NewHUD() *HUD {
	face := hudFace()
	h := &HUD{}

	label := func() *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text("", &face, hudTextColor),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		)
	}
	h.weapon = label()
	h.ammo = label()
	h.score = label()
	h.reload = label()

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 160})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(24),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	bar.AddChild(h.weapon)
	bar.AddChild(h.ammo)
	bar.AddChild(h.reload)
	bar.AddChild(h.score)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bar)
	h.UI = &ebitenui.UI{Container: root}
	return h
}

// Set copies an arena status into the widgets.
func (h *HUD) Set(st arena.Status) {
	h.weapon.Label = st.Weapon
	h.ammo.Label = st.Ammo
	h.score.Label = fmt.Sprintf("Score %d   Kills %d   Enemies %d   Towers %d", st.Points, st.Kills, st.ActiveEnemies, st.TowersLeft)
	h.reload.Label = ""
	if st.Reloading {
		h.reload.Label = fmt.Sprintf("reloading %3.0f%%", st.ReloadProgress*100)
	}
}

func hudFace() ebtext.Face {
	return ebtext.NewGoXFace(basicfont.Face7x13)
}

// NewPauseUI builds a centered pause menu with a Resume button.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	face := hudFace()
	btnTextColor := &widget.ButtonTextColor{Idle: hudTextColor}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, hudTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	help := widget.NewText(
		widget.TextOpts.Text("WASD move  Mouse aim/fire  1-4 weapons  R reload  Esc pause", &face, hudTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.paused = false
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(help)
	panel.AddChild(resumeBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
