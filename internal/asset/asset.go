// Package asset provides read-only access to the compressed animation stream.
//
// A Source is queried by ranged reads only; the player never needs the whole
// stream in memory unless the stream itself is zstd-framed.
package asset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"k8s.io/klog/v2"
)

// ErrEmpty is returned when an asset holds no stream bytes.
var ErrEmpty = errors.New("asset: empty stream")

// zstdMagic is the little-endian zstd frame magic 0xFD2FB528.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// maxDecodedSize bounds the memory a zstd-framed asset may expand to.
const maxDecodedSize = 64 << 20

// Source is a byte-addressable, immutable compressed stream.
// *bytes.Reader and *io.SectionReader satisfy it.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Asset is a Source with an owner that must be closed.
type Asset struct {
	Source
	name   string
	closer io.Closer
}

// Name returns the path or label the asset was opened from.
func (a *Asset) Name() string {
	return a.name
}

// Close releases the underlying file, if any.
func (a *Asset) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// FromBytes wraps an in-memory stream.
func FromBytes(name string, data []byte) (*Asset, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return &Asset{Source: bytes.NewReader(data), name: name}, nil
}

// Open opens a stream file for ranged reads. Files starting with a zstd frame
// are decompressed once into memory; anything else is read in place.
func Open(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	head := make([]byte, len(zstdMagic))
	n, err := f.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, err
	}
	if n == len(zstdMagic) && bytes.Equal(head, zstdMagic) {
		defer f.Close()
		a, err := OpenZstd(path, bufio.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return a, nil
	}

	klog.V(2).Infof("asset %s: %d bytes, ranged reads", path, st.Size())
	return &Asset{
		Source: io.NewSectionReader(f, 0, st.Size()),
		name:   path,
		closer: f,
	}, nil
}

// OpenZstd decompresses a zstd-framed stream from r into memory.
func OpenZstd(name string, r io.Reader) (*Asset, error) {
	dec, err := zstd.NewReader(
		r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(maxDecodedSize),
	)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	klog.V(2).Infof("asset %s: zstd stream expanded to %d bytes", name, len(data))
	return FromBytes(name, data)
}
