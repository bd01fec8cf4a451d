package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/arjunvale/dmgcore/internal/emu"
)

// game adapts a Machine to ebiten's update/draw loop: one RunFrame per
// ebiten tick, keyboard polled into a JoypadState each tick.
type game struct {
	m      *emu.Machine
	screen *ebiten.Image
}

func newGame(m *emu.Machine) *game {
	return &game{
		m:      m,
		screen: ebiten.NewImage(160, 144),
	}
}

func (g *game) Update() error {
	g.m.SetJoypad(emu.JoypadState{
		Up:     ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		A:      ebiten.IsKeyPressed(ebiten.KeyZ),
		B:      ebiten.IsKeyPressed(ebiten.KeyX),
		Start:  ebiten.IsKeyPressed(ebiten.KeyEnter),
		Select: ebiten.IsKeyPressed(ebiten.KeyBackspace),
	})
	return g.m.RunFrame()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.screen.WritePixels(g.m.Framebuffer())
	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/160, float64(sh)/144)
	screen.DrawImage(g.screen, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 160, 144
}
