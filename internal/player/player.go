// Package player owns the playback context: stream position, frame counter
// and decoder state, advanced one redraw at a time.
package player

import (
	"errors"
	"fmt"
	"sync"

	"k8s.io/klog/v2"

	"github.com/svanichkin/flick/internal/asset"
	"github.com/svanichkin/flick/internal/bitstream"
	"github.com/svanichkin/flick/internal/config"
	"github.com/svanichkin/flick/internal/decode"
	"github.com/svanichkin/flick/internal/sink"
	"github.com/svanichkin/flick/internal/stream"
)

var (
	ErrNoSurface = errors.New("player: no surface")
	ErrNoAsset   = errors.New("player: no asset")
)

// State is the playback state of a Player.
type State uint8

const (
	// Idle: no frame decoded since creation or the last reset.
	Idle State = iota
	// Streaming: at least one frame of the current loop has been decoded.
	Streaming
)

func (s State) String() string {
	if s == Streaming {
		return "streaming"
	}
	return "idle"
}

// Options are optional collaborators of a Player.
type Options struct {
	// OnDirty is called after every successful Step to request a repaint.
	OnDirty func()
}

// Stats is a snapshot of playback progress.
type Stats struct {
	State     State
	Frame     int          // frames decoded in the current loop
	Cursor    uint         // stream position, in the scheme's unit
	Loops     int          // completed loops
	Truncated int          // frames decoded from a short chunk
	LastChunk stream.Chunk // chunk of the most recent frame
}

// Player decodes one frame per Step into a surface. All state is guarded by
// a single mutex, so a Step never overlaps another Step or a Reset.
type Player struct {
	mu sync.Mutex

	cfg     config.Config
	stream  *stream.Streamer
	dec     decode.Decoder
	sink    *sink.Sink
	onDirty func()

	state     State
	frame     int
	loops     int
	truncated int
	last      stream.Chunk
}

// New validates cfg and builds a player reading src and drawing into surf.
func New(cfg config.Config, src asset.Source, surf sink.Surface, opts Options) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if surf == nil {
		return nil, ErrNoSurface
	}
	if src == nil {
		return nil, ErrNoAsset
	}

	w, h := cfg.Canvas(surf.Bounds())
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", config.ErrInvalid, w, h)
	}
	dec, err := NewDecoder(cfg.Scheme, w, h)
	if err != nil {
		return nil, err
	}

	p := &Player{
		cfg:     cfg,
		stream:  stream.New(src, dec.Unit(), cfg.ChunkWindow()),
		dec:     dec,
		sink:    sink.New(surf, w, h),
		onDirty: opts.OnDirty,
	}
	klog.V(2).Infof("player: %s %dx%d canvas on %s surface %v, %d frames at %d fps",
		cfg.Scheme, w, h, surf.Format(), surf.Bounds().Size(), cfg.Frames, cfg.FPS)
	return p, nil
}

// NewDecoder returns the decoder for a frame scheme.
func NewDecoder(scheme config.Scheme, w, h int) (decode.Decoder, error) {
	switch scheme {
	case config.SchemeByteEscape:
		return decode.NewRunLength(w, h, bitstream.ByteEscape{}), nil
	case config.SchemeTagged:
		return decode.NewRunLength(w, h, bitstream.Tagged{}), nil
	case config.SchemeQuadtree:
		return decode.NewQuadtree(w, h), nil
	}
	return nil, fmt.Errorf("%w: %v", config.ErrUnknownScheme, scheme)
}

// Step performs one redraw: it wraps to the first frame once every frame
// has been shown, clears the surface, and decodes the next frame into it.
func (p *Player) Step() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.frame >= p.cfg.Frames {
		p.reset()
		p.loops++
		klog.V(2).Infof("player: loop %d complete, rewinding", p.loops)
	}

	p.sink.Clear()
	var f decode.Frame
	ch, err := p.stream.Next(func(c *bitstream.Cursor) error {
		f = p.dec.Decode(c, p.sink)
		return nil
	})
	if err != nil {
		return fmt.Errorf("player: frame %d: %w", p.frame, err)
	}
	if f.Truncated {
		p.truncated++
		klog.V(3).Infof("player: frame %d ran past its %d byte chunk", p.frame, ch.Length)
	}
	klog.V(4).Infof("player: frame %d offset %d len %d advance %d tokens %d",
		p.frame, ch.Offset, ch.Length, ch.Advance, f.Tokens)

	p.last = ch
	p.frame++
	p.state = Streaming
	if p.onDirty != nil {
		p.onDirty()
	}
	return nil
}

// Reset rewinds to the first frame and clears decoder state.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}

func (p *Player) reset() {
	p.stream.Reset()
	p.dec.Reset()
	p.frame = 0
	p.state = Idle
}

// Stats returns a snapshot of playback progress.
func (p *Player) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		State:     p.state,
		Frame:     p.frame,
		Cursor:    p.stream.Pos(),
		Loops:     p.loops,
		Truncated: p.truncated,
		LastChunk: p.last,
	}
}

// Config returns the configuration the player was built with.
func (p *Player) Config() config.Config {
	return p.cfg
}

// Canvas returns the logical canvas size being decoded.
func (p *Player) Canvas() (w, h int) {
	return p.sink.Size()
}
