// Package fs opens dump files from the local filesystem.
package fs

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
)

// bzip2Magic prefixes every bzip2 stream.
var bzip2Magic = []byte("BZh")

// Dump is an open dump file. Compressed dumps are decompressed on the fly.
type Dump struct {
	f          *os.File
	r          io.Reader
	size       int64
	compressed bool
}

// OpenDump opens the dump at path. A bzip2 stream is detected by its
// magic bytes regardless of the file name.
func OpenDump(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat dump: %w", err)
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(len(bzip2Magic))
	if err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("read dump: %w", err)
	}

	d := &Dump{f: f, r: br, size: info.Size()}
	if bytes.Equal(head, bzip2Magic) {
		d.r = bzip2.NewReader(br)
		d.compressed = true
	}
	return d, nil
}

// Read reads decompressed dump bytes.
func (d *Dump) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

// Close closes the underlying file.
func (d *Dump) Close() error {
	return d.f.Close()
}

// Size returns the size of the file on disk.
func (d *Dump) Size() int64 {
	return d.size
}

// Compressed reports whether the file is a bzip2 stream.
func (d *Dump) Compressed() bool {
	return d.compressed
}
