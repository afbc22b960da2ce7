// Package pack writes converter output files to a directory tree or a zip
// archive.
package pack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Sink errors.
var (
	ErrInvalidName = errors.New("invalid output name")
	ErrEntryOpen   = errors.New("previous entry still open")
	ErrClosed      = errors.New("sink closed")
)

// Sink creates output files by slash-separated relative name.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
	Close() error
}

func checkName(name string) error {
	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// DirSink writes files under a root directory, creating parents as needed.
type DirSink struct {
	Root string
}

// NewDirSink returns a sink rooted at root.
func NewDirSink(root string) *DirSink {
	return &DirSink{Root: root}
}

// Create implements Sink.
func (s *DirSink) Create(name string) (io.WriteCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	p := filepath.Join(s.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	return os.Create(p)
}

// Close implements Sink.
func (s *DirSink) Close() error { return nil }

// ZipSink writes files as entries of a zip archive. Entries are written
// one at a time; each must be closed before the next is created.
type ZipSink struct {
	zw     *zip.Writer
	open   bool
	closed bool
}

// NewZipSink returns a sink writing an archive to w.
func NewZipSink(w io.Writer) *ZipSink {
	return &ZipSink{zw: zip.NewWriter(w)}
}

// Create implements Sink.
func (s *ZipSink) Create(name string) (io.WriteCloser, error) {
	switch {
	case s.closed:
		return nil, ErrClosed
	case s.open:
		return nil, ErrEntryOpen
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	w, err := s.zw.Create(path.Clean(name))
	if err != nil {
		return nil, err
	}
	s.open = true
	return &zipEntry{w: w, sink: s}, nil
}

// Close finishes the archive. It does not close the underlying writer.
func (s *ZipSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.zw.Close()
}

type zipEntry struct {
	w    io.Writer
	sink *ZipSink
	done bool
}

func (e *zipEntry) Write(p []byte) (int, error) {
	if e.done {
		return 0, ErrClosed
	}
	return e.w.Write(p)
}

func (e *zipEntry) Close() error {
	if !e.done {
		e.done = true
		e.sink.open = false
	}
	return nil
}
