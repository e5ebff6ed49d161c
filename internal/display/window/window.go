// Package window plays an animation in a desktop window. Ebiten's update
// loop is the frame scheduler: its tick rate is set to the animation's frame
// rate and every tick performs one redraw.
package window

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"k8s.io/klog/v2"

	"github.com/svanichkin/flick/internal/display"
	"github.com/svanichkin/flick/internal/player"
	"github.com/svanichkin/flick/internal/sink"
)

// errDone ends the game loop once the frame limit is reached.
var errDone = errors.New("window: done")

// Game adapts a Player to ebiten.Game.
type Game struct {
	p     *player.Player
	surf  sink.Surface
	img   *ebiten.Image
	pix   []byte
	dirty bool
	limit int
	drawn int
}

// Options configure the window.
type Options struct {
	Title string
	Scale int
	// Limit stops playback after this many frames; 0 plays forever.
	Limit int
}

// Run opens a window and plays p, drawn into surf, until the window is
// closed or the frame limit is reached.
func Run(p *player.Player, surf sink.Surface, opts Options) error {
	b := surf.Bounds()
	scale := max(opts.Scale, 1)
	g := &Game{
		p:     p,
		surf:  surf,
		pix:   make([]byte, 4*b.Dx()*b.Dy()),
		limit: opts.Limit,
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(b.Dx()*scale, b.Dy()*scale)
	ebiten.SetTPS(p.Config().FPS)
	ebiten.SetRunnableOnUnfocused(true)

	err := ebiten.RunGame(g)
	if errors.Is(err, errDone) {
		return nil
	}
	return err
}

// Update performs one redraw step per tick.
func (g *Game) Update() error {
	if g.limit > 0 && g.drawn >= g.limit {
		return errDone
	}
	if err := g.p.Step(); err != nil {
		klog.Errorf("window: %v", err)
		return err
	}
	g.drawn++
	g.dirty = true
	return nil
}

// Draw uploads the surface when a step repainted it and presents it.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		b := g.surf.Bounds()
		g.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	if g.dirty {
		display.ExpandRGBA(g.surf, g.pix)
		g.img.WritePixels(g.pix)
		g.dirty = false
	}
	screen.DrawImage(g.img, nil)
}

// Layout keeps the logical screen at surface resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.surf.Bounds()
	return b.Dx(), b.Dy()
}
