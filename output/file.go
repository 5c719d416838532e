package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix selects a zstd-compressed result file.
const CompressedSuffix = ".zst"

type compressedFile struct {
	*zstd.Encoder
	f *os.File
}

func (c *compressedFile) Close() error {
	return errors.Join(c.Encoder.Close(), c.f.Close())
}

// CreateResultFile creates (or truncates) the result file at path. Paths ending in
// CompressedSuffix are zstd-compressed transparently.
func CreateResultFile(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create result file: %w", err)
	}
	if !strings.HasSuffix(path, CompressedSuffix) {
		return f, nil
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &compressedFile{Encoder: enc, f: f}, nil
}

type decompressedFile struct {
	*zstd.Decoder
	f *os.File
}

func (d *decompressedFile) Close() error {
	d.Decoder.Close()
	return d.f.Close()
}

// OpenResultFile opens a result file written by CreateResultFile.
func OpenResultFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result file: %w", err)
	}
	if !strings.HasSuffix(path, CompressedSuffix) {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &decompressedFile{Decoder: dec, f: f}, nil
}
