package pack

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives generated parts. Small parts arrive through WritePart in
// one buffer; large parts stream through OpenPart / WriteChunk / ClosePart.
// A sink never sees two parts open at once.
type Sink interface {
	WritePart(name string, data []byte) error
	OpenPart(name string) error
	WriteChunk(data []byte) error
	ClosePart() error
}

// MemSink captures parts in memory, preserving generation order. Used by
// tests and by callers that post-process parts before packaging.
type MemSink struct {
	parts map[string][]byte
	order []string

	open    bool
	curName string
	cur     bytes.Buffer
}

// NewMemSink returns an empty in-memory sink.
func NewMemSink() *MemSink {
	return &MemSink{parts: make(map[string][]byte)}
}

// WritePart stores a copy of data under name.
func (s *MemSink) WritePart(name string, data []byte) error {
	if _, ok := s.parts[name]; !ok {
		s.order = append(s.order, name)
	}
	s.parts[name] = append([]byte(nil), data...)
	return nil
}

// OpenPart starts a streamed part.
func (s *MemSink) OpenPart(name string) error {
	if s.open {
		return fmt.Errorf("pack: part %q still open", s.curName)
	}
	s.open = true
	s.curName = name
	s.cur.Reset()
	return nil
}

// WriteChunk appends to the open part.
func (s *MemSink) WriteChunk(data []byte) error {
	if !s.open {
		return ErrSinkClosed
	}
	s.cur.Write(data)
	return nil
}

// ClosePart finishes the streamed part and stores it.
func (s *MemSink) ClosePart() error {
	if !s.open {
		return ErrSinkClosed
	}
	s.open = false
	return s.WritePart(s.curName, s.cur.Bytes())
}

// Part returns the stored bytes for name, nil when absent.
func (s *MemSink) Part(name string) []byte { return s.parts[name] }

// Names returns the part names in generation order.
func (s *MemSink) Names() []string { return s.order }

// ZipSink forwards parts into a zip archive, the package's container
// format. The zip writer itself is the external collaborator; the sink only
// adapts the part interface onto it.
type ZipSink struct {
	zw  *zip.Writer
	cur io.Writer
}

// NewZipSink wraps an open zip writer. The caller closes the writer after
// generation.
func NewZipSink(zw *zip.Writer) *ZipSink {
	return &ZipSink{zw: zw}
}

// WritePart adds one complete file to the archive.
func (s *ZipSink) WritePart(name string, data []byte) error {
	w, err := s.zw.Create(name)
	if err != nil {
		return fmt.Errorf("pack: create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("pack: write %s: %w", name, err)
	}
	return nil
}

// OpenPart starts a streamed archive entry.
func (s *ZipSink) OpenPart(name string) error {
	w, err := s.zw.Create(name)
	if err != nil {
		return fmt.Errorf("pack: create %s: %w", name, err)
	}
	s.cur = w
	return nil
}

// WriteChunk appends to the open entry.
func (s *ZipSink) WriteChunk(data []byte) error {
	if s.cur == nil {
		return ErrSinkClosed
	}
	_, err := s.cur.Write(data)
	return err
}

// ClosePart finishes the open entry. The zip writer finalizes it when the
// next entry opens or the archive closes.
func (s *ZipSink) ClosePart() error {
	if s.cur == nil {
		return ErrSinkClosed
	}
	s.cur = nil
	return nil
}

// FileSink writes the package to a filesystem path atomically: parts stream
// into a temp file in the target directory, renamed over the destination
// only after a clean Close.
type FileSink struct {
	*ZipSink
	zw   *zip.Writer
	f    *os.File
	tmp  string
	path string
}

// NewFileSink creates the temp file and an open sink onto it.
func NewFileSink(path string) (*FileSink, error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".sheetpack-tmp-*")
	if err != nil {
		return nil, fmt.Errorf("pack: create temp file: %w", err)
	}
	zw := zip.NewWriter(f)
	return &FileSink{
		ZipSink: NewZipSink(zw),
		zw:      zw,
		f:       f,
		tmp:     f.Name(),
		path:    path,
	}, nil
}

// Close finalizes the archive, syncs, and atomically renames it into place.
func (s *FileSink) Close() error {
	if err := s.zw.Close(); err != nil {
		s.discard()
		return fmt.Errorf("pack: close archive: %w", err)
	}
	if err := s.f.Sync(); err != nil {
		s.discard()
		return fmt.Errorf("pack: sync temp file: %w", err)
	}
	if err := s.f.Close(); err != nil {
		_ = os.Remove(s.tmp)
		return fmt.Errorf("pack: close temp file: %w", err)
	}
	if err := os.Rename(s.tmp, s.path); err != nil {
		_ = os.Remove(s.tmp)
		return fmt.Errorf("pack: rename temp file: %w", err)
	}
	return nil
}

// Abort drops the partial output. Safe after a failed generation.
func (s *FileSink) Abort() {
	s.discard()
	_ = os.Remove(s.tmp)
}

func (s *FileSink) discard() {
	_ = s.f.Close()
}
