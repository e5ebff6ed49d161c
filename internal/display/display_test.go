package display

import (
	"bytes"
	"image"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/svanichkin/flick/internal/sink"
)

func checker(w, h int) *sink.Bitmap {
	bm := sink.NewBitmap(w, h)
	s := sink.New(bm, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				s.SetForeground(x, y)
			}
		}
	}
	return bm
}

func TestTerminal_HalfBlocks(t *testing.T) {
	var out bytes.Buffer
	bm := sink.NewBitmap(4, 3)
	s := sink.New(bm, 4, 3)
	s.SetForeground(0, 0)
	s.SetForeground(0, 1)
	s.SetForeground(1, 0)
	s.SetForeground(2, 1)
	s.SetForeground(3, 2)

	require.NoError(t, NewTerminalWriter(&out, 0, 0).Draw(bm))
	lines := strings.Split(strings.TrimPrefix(out.String(), "\x1b[H"), "\x1b[K\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "█▀▄ ", lines[0])
	assert.Equal(t, "   ▀", lines[1])
}

func TestTerminal_Crops(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewTerminalWriter(&out, 3, 1).Draw(checker(10, 10)))
	body := strings.TrimPrefix(out.String(), "\x1b[H")
	assert.Equal(t, "▀▄▀\x1b[K\n", body)
}

func TestToImage(t *testing.T) {
	g, ok := ToImage(checker(5, 4)).(*image.Gray)
	require.True(t, ok)
	assert.EqualValues(t, 0xff, g.GrayAt(0, 0).Y)
	assert.EqualValues(t, 0, g.GrayAt(1, 0).Y)

	p := sink.NewIndexed(3, 3)
	assert.Same(t, p.Paletted, ToImage(p))
}

func TestExpandRGBA(t *testing.T) {
	bm := checker(2, 1)
	dst := make([]byte, 8)
	ExpandRGBA(bm, dst)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0xff}, dst)

	p := sink.NewIndexed(2, 1)
	sink.New(p, 2, 1).SetForeground(1, 0)
	ExpandRGBA(p, dst)
	assert.Equal(t, []byte{0, 0, 0, 0xff, 0xff, 0xff, 0xff, 0xff}, dst)
}

func TestDumper(t *testing.T) {
	d, err := NewDumper(t.TempDir())
	require.NoError(t, err)

	first, err := d.Draw(checker(6, 4))
	require.NoError(t, err)
	second, err := d.Draw(sink.NewIndexed(6, 4))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	f, err := os.Open(first)
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.EqualValues(t, 0xffff, r)
}
