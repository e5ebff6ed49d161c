// Command flick plays a run-length or quadtree encoded animation stream.
//
//	flick -asset frames.bin                     # desktop window
//	flick -asset frames.bin -mode term          # ANSI terminal
//	flick -asset frames.bin -mode dump -out dir # one BMP per frame
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"k8s.io/klog/v2"

	"github.com/svanichkin/flick/internal/asset"
	"github.com/svanichkin/flick/internal/config"
	"github.com/svanichkin/flick/internal/display"
	"github.com/svanichkin/flick/internal/display/window"
	"github.com/svanichkin/flick/internal/player"
	"github.com/svanichkin/flick/internal/sink"
)

var (
	configPath = flag.String("config", "", "INI configuration file")
	assetPath  = flag.String("asset", "", "compressed frame stream (overrides config)")
	schemeName = flag.String("scheme", "", "frame scheme: byte-escape, tagged or quadtree (overrides config)")
	mode       = flag.String("mode", "window", "output: window, term or dump")
	outDir     = flag.String("out", "frames", "directory for -mode dump")
	maxFrames  = flag.Int("max-frames", 0, "stop after this many frames (0: forever, dump: one loop)")
	scale      = flag.Int("scale", 3, "window scale factor")
	color      = flag.Bool("color", false, "use an 8-bit indexed surface")
)

func main() {
	klog.InitFlags(nil)
	_ = flag.Set("logtostderr", "true")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer klog.Flush()

	cfg, err := loadConfig()
	if err != nil {
		klog.Fatalf("config: %v", err)
	}
	if cfg.AssetPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	a, err := asset.Open(cfg.AssetPath)
	if err != nil {
		klog.Fatalf("open asset: %v", err)
	}
	defer a.Close()
	klog.Infof("playing %s (%d bytes, %s, %d frames at %d fps)", a.Name(), a.Size(), cfg.Scheme, cfg.Frames, cfg.FPS)

	var surf sink.Surface
	if cfg.Color {
		surf = sink.NewIndexed(cfg.SurfaceWidth, cfg.SurfaceHeight)
	} else {
		surf = sink.NewBitmap(cfg.SurfaceWidth, cfg.SurfaceHeight)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "window":
		err = playWindow(cfg, a, surf)
	case "term":
		err = playTerminal(ctx, cfg, a, surf)
	case "dump":
		err = dumpFrames(cfg, a, surf)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	if *assetPath != "" {
		cfg.AssetPath = *assetPath
	}
	if *schemeName != "" {
		s, err := config.ParseScheme(*schemeName)
		if err != nil {
			return cfg, err
		}
		cfg.Scheme = s
	}
	if *color {
		cfg.Color = true
	}
	return cfg, cfg.Validate()
}

func playWindow(cfg config.Config, a *asset.Asset, surf sink.Surface) error {
	p, err := player.New(cfg, a, surf, player.Options{})
	if err != nil {
		return err
	}
	return window.Run(p, surf, window.Options{
		Title: "flick - " + a.Name(),
		Scale: *scale,
		Limit: *maxFrames,
	})
}

func playTerminal(ctx context.Context, cfg config.Config, a *asset.Asset, surf sink.Surface) error {
	t := display.NewTerminal(os.Stdout)
	if err := t.Clear(); err != nil {
		return err
	}
	shown := 0
	p, err := player.New(cfg, a, surf, player.Options{
		OnDirty: func() {
			if err := t.Draw(surf); err != nil {
				klog.Errorf("terminal: %v", err)
			}
			shown++
			t.Status("frame %d/%d", (shown-1)%cfg.Frames+1, cfg.Frames)
		},
	})
	if err != nil {
		return err
	}
	return p.Run(ctx, *maxFrames)
}

func dumpFrames(cfg config.Config, a *asset.Asset, surf sink.Surface) error {
	d, err := display.NewDumper(*outDir)
	if err != nil {
		return err
	}
	var drawErr error
	p, err := player.New(cfg, a, surf, player.Options{
		OnDirty: func() {
			if _, err := d.Draw(surf); err != nil && drawErr == nil {
				drawErr = err
			}
		},
	})
	if err != nil {
		return err
	}

	limit := *maxFrames
	if limit <= 0 {
		limit = cfg.Frames
	}
	for i := 0; i < limit; i++ {
		if err := p.Step(); err != nil {
			return err
		}
		if drawErr != nil {
			return drawErr
		}
	}
	st := p.Stats()
	klog.Infof("wrote %d frames to %s (%d truncated)", limit, *outDir, st.Truncated)
	return nil
}
