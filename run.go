package lettersea

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// RunConfig controls the window [Run] creates.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// FontSize is the glyph size in points. Defaults to 22.
	FontSize float64
	// Background is the clear color. Defaults to a deep blue-black.
	Background color.RGBA
	// OnUpdate, when set, is called once per tick before the ocean updates.
	OnUpdate func(*Ocean)
}

// Run opens a window, runs the ocean at the display tick rate, and draws
// every letter with a TTF face. The pointer drives the attractor; pressing
// on a letter grabs it and releasing throws it. Run blocks until the window
// closes.
//
// Run is the drawing collaborator the core itself stays out of: it consumes
// only [Ocean.RenderStates] and the grab/drag/release entry points, the same
// surface any custom renderer would use.
func Run(o *Ocean, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 22
	}
	if cfg.Background == (color.RGBA{}) {
		cfg.Background = color.RGBA{R: 10, G: 14, B: 26, A: 255}
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load glyph font: %w", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)

	return ebiten.RunGame(&viewer{
		ocean: o,
		cfg:   cfg,
		face:  &text.GoTextFace{Source: src, Size: cfg.FontSize},
	})
}

// viewer implements ebiten.Game over an Ocean.
type viewer struct {
	ocean *Ocean
	cfg   RunConfig
	face  *text.GoTextFace

	grabbed *Particle
	states  []RenderState
}

// grabReach is how close in pixels a press must be to a letter to grab it.
const grabReach = 24.0

func (v *viewer) Update() error {
	mx, my := ebiten.CursorPosition()
	cursor := Vec2{float64(mx), float64(my)}

	v.ocean.SetCenter(cursor)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.grabbed = v.ocean.GrabAt(cursor, grabReach)
	}
	if v.grabbed != nil {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			v.ocean.Drag(v.grabbed, cursor)
		} else {
			v.ocean.Release(v.grabbed)
			v.grabbed = nil
		}
	}

	if v.cfg.OnUpdate != nil {
		v.cfg.OnUpdate(v.ocean)
	}
	v.ocean.Update()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.cfg.Background)

	v.states = v.ocean.RenderStates(v.states[:0])
	for _, s := range v.states {
		glyph := string(s.Glyph)
		w, h := text.Measure(glyph, v.face, 0)

		op := &text.DrawOptions{}
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Rotate(s.Rotation)
		op.GeoM.Translate(s.X, s.Y)
		op.ColorScale.ScaleAlpha(float32(s.Alpha))
		text.Draw(screen, glyph, v.face, op)
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.cfg.Width, v.cfg.Height
}
