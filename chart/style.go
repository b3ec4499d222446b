package chart

import (
	"image/color"

	"github.com/YuminosukeSato/errbound/bound"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	colorBars    = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff} // skyblue
	colorGreen   = color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}
	colorBlue    = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	colorOrange  = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	colorRed     = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	colorPurple  = color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}
	colorPoints  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x80}
	colorOutline = color.Black
)

var dashed = []vg.Length{vg.Points(6), vg.Points(3)}

// markerStyle maps a marker role to the line style it is drawn with.
func markerStyle(role bound.Role) draw.LineStyle {
	s := draw.LineStyle{Width: vg.Points(2), Dashes: dashed}
	switch role {
	case bound.RoleMean:
		s.Color = colorGreen
	case bound.RoleP95:
		s.Color = colorOrange
	case bound.RoleP99:
		s.Color = colorBlue
	case bound.RoleP999:
		s.Color = colorRed
		s.Dashes = nil
	case bound.RoleMax:
		s.Color = colorPurple
	default:
		s.Color = colorOutline
	}
	return s
}
