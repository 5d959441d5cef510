package main

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// argbImage is a draw.Image over an ARGB8888 frame.
type argbImage struct {
	pix []uint32
	w   int
	h   int
}

func (m *argbImage) ColorModel() color.Model { return color.NRGBAModel }

func (m *argbImage) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

func (m *argbImage) At(x, y int) color.Color {
	if !image.Pt(x, y).In(m.Bounds()) {
		return color.NRGBA{}
	}
	v := m.pix[y*m.w+x]
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
}

func (m *argbImage) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(m.Bounds()) {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	m.pix[y*m.w+x] = uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

var (
	hudText   = image.NewUniform(color.White)
	hudShadow = image.NewUniform(color.Black)
)

// drawHUD writes lines top-left with a one pixel shadow
func drawHUD(fb *frameBuffer, lines []string) {
	img := &argbImage{pix: fb.pixels, w: fb.req.Width, h: fb.req.Height}
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	ascent := face.Metrics().Ascent.Ceil()

	for i, line := range lines {
		x, y := 6, 6+ascent+i*lineHeight
		shadow := &font.Drawer{Dst: img, Src: hudShadow, Face: face, Dot: fixed.P(x+1, y+1)}
		shadow.DrawString(line)
		d := &font.Drawer{Dst: img, Src: hudText, Face: face, Dot: fixed.P(x, y)}
		d.DrawString(line)
	}
}
