package display

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"k8s.io/klog/v2"

	"github.com/svanichkin/flick/internal/sink"
)

// Dumper writes each presented frame to a numbered BMP file.
type Dumper struct {
	dir  string
	next int
}

// NewDumper creates dir if needed and returns a dumper writing into it.
func NewDumper(dir string) (*Dumper, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Dumper{dir: dir}, nil
}

// Draw writes s as the next frame file and returns its path.
func (d *Dumper) Draw(s sink.Surface) (string, error) {
	path := filepath.Join(d.dir, fmt.Sprintf("frame%05d.bmp", d.next))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := bmp.Encode(f, ToImage(s)); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	d.next++
	klog.V(4).Infof("dump: wrote %s", path)
	return path, nil
}
