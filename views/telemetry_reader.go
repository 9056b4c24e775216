package views

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrNoRecord means the stream holds no data row yet.
	ErrNoRecord = errors.New("no telemetry record")
	// ErrMalformedRecord means the latest row has too few fields to decode.
	ErrMalformedRecord = errors.New("malformed telemetry record")
)

const tailWindow = 8 * 1024

// Record is one decoded row keyed by column name, plus the legacy aliases.
type Record map[string]string

// ReadLatest returns the newest complete row of the record stream at path.
//
// The writer may be appending concurrently, so the final line can be blank
// or only partly written. A blank final line falls back to the line before
// it; an unterminated line that is too short is treated as in flight and
// the previous complete row is used instead.
func ReadLatest(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat stream: %w", err)
	}

	for window := int64(tailWindow); ; window *= 2 {
		if window > st.Size() {
			window = st.Size()
		}
		buf := make([]byte, window)
		if _, err := f.ReadAt(buf, st.Size()-window); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read stream tail: %w", err)
		}

		whole := window == st.Size()
		lines := tailLines(buf, whole)
		if !whole && nonBlank(lines) < 2 {
			continue // too little of the tail to choose safely, widen
		}
		return pickLatest(lines, bytes.HasSuffix(buf, []byte("\n")))
	}
}

// tailLines splits buf into lines. When buf does not start at offset 0 its
// first line may be cut and is discarded.
func tailLines(buf []byte, whole bool) []string {
	lines := strings.Split(string(buf), "\n")
	if !whole {
		lines = lines[1:]
	}
	return lines
}

func nonBlank(lines []string) int {
	n := 0
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	return n
}

func pickLatest(lines []string, terminated bool) (Record, error) {
	last := skipBlank(lines, len(lines)-1)
	if last < 0 {
		return nil, ErrNoRecord
	}

	// With no trailing newline the last non-blank line is still being
	// written; prefer the prior one if the tail is short.
	if !terminated && last == len(lines)-1 {
		if fields := splitRow(lines[last]); len(fields) < NumColumns && last > 0 {
			if last = skipBlank(lines, last-1); last < 0 {
				return nil, ErrNoRecord
			}
		}
	}

	line := strings.TrimSpace(lines[last])
	fields := splitRow(line)
	if ValidateHeader(fields) {
		return nil, ErrNoRecord
	}
	return ParseRecord(fields)
}

// skipBlank walks back from i to the nearest non-blank line, or -1.
func skipBlank(lines []string, i int) int {
	for i >= 0 && strings.TrimSpace(lines[i]) == "" {
		i--
	}
	return i
}

func splitRow(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r"), ",")
}

// ParseRecord maps a split row onto column names and adds the aliases.
func ParseRecord(fields []string) (Record, error) {
	if len(fields) < NumColumns {
		return nil, fmt.Errorf("%w: expected %d fields, got %d",
			ErrMalformedRecord, NumColumns, len(fields))
	}

	rec := make(Record, NumColumns+len(columnAliases))
	for i, name := range TelemetryColumns {
		rec[name] = fields[i]
	}
	for alias, src := range columnAliases {
		rec[alias] = rec[src]
	}
	return rec, nil
}

// Fields returns the record's values in column order.
func (r Record) Fields() []string {
	out := make([]string, len(TelemetryColumns))
	for i, name := range TelemetryColumns {
		out[i] = r[name]
	}
	return out
}
