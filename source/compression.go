package source

import (
	"errors"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is a compression format, identified by its file suffix.
type Compression string

const (
	None Compression = ""
	Gzip Compression = ".gz"
	Zstd Compression = ".zst"
	LZ4  Compression = ".lz4"
)

// CompressionOf returns the compression format of a file name.
func CompressionOf(name string) Compression {
	switch c := Compression(path.Ext(name)); c {
	case Gzip, Zstd, LZ4:
		return c
	default:
		return None
	}
}

// Decompress wraps r in a decompressor for format c.
func Decompress(r io.Reader, c Compression) (io.ReadCloser, error) {
	return decompress(io.NopCloser(r), c)
}

func decompress(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case Zstd:
		zr, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		zrc := zr.IOReadCloser()
		return &readCloser{Reader: zrc, closers: []io.Closer{zrc, rc}}, nil
	case LZ4:
		return &readCloser{Reader: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		return rc, nil
	}
}

// readCloser closes a decompressor and the stream beneath it.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
