package views

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// StreamWriter appends rows to the durable record stream.
//
// The stream is append-only: the file is opened with O_APPEND and existing
// content is never rewritten. Each row is encoded fully in memory and handed
// to the OS in a single write, so a reader sees either the whole row or none
// of it. If a write fails part-way the file is truncated back to where the
// row started.
type StreamWriter struct {
	mu   sync.Mutex
	path string
	file streamFile
	size int64
	rows uint64
	buf  bytes.Buffer
}

// streamFile is the part of *os.File the writer uses.
type streamFile interface {
	io.WriteCloser
	Truncate(size int64) error
	Sync() error
}

// OpenStream opens (or creates) the record stream at path. When the file is
// empty, either freshly created or pre-existing, header is written first.
func OpenStream(path string, header []string) (*StreamWriter, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create stream dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open stream %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat stream %s: %w", path, err)
	}

	w := &StreamWriter{path: path, file: f, size: st.Size()}

	if w.size == 0 && len(header) > 0 {
		if err := w.write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write stream header: %w", err)
		}
	}
	return w, nil
}

// Append writes one data row. It is all-or-nothing.
func (w *StreamWriter) Append(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return fmt.Errorf("append %s: stream closed", w.path)
	}
	if err := w.write(row); err != nil {
		return fmt.Errorf("append %s: %w", w.path, err)
	}
	w.rows++
	return nil
}

// write encodes row and emits it with one syscall. Caller holds mu (or owns w).
func (w *StreamWriter) write(row []string) error {
	w.buf.Reset()
	cw := csv.NewWriter(&w.buf)
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	n, err := w.file.Write(w.buf.Bytes())
	if err != nil {
		if n > 0 {
			// Drop the torn tail so the stream keeps only complete rows.
			if terr := w.file.Truncate(w.size); terr != nil {
				return fmt.Errorf("%w (truncate after partial write: %v)", err, terr)
			}
		}
		return err
	}
	w.size += int64(n)
	return nil
}

// Sync commits the written rows to stable storage.
func (w *StreamWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

// Close syncs and closes the file. Further appends fail.
func (w *StreamWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	serr := w.file.Sync()
	cerr := w.file.Close()
	w.file = nil
	if cerr != nil {
		return cerr
	}
	return serr
}

// Rows returns the number of data rows written by this writer (excludes header).
func (w *StreamWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}
