package castgraph

import (
	"bufio"
	"io"
	"strings"
)

// Page unit delimiters in a MediaWiki XML dump.
const (
	PageStartMarker = "<page>"
	PageEndMarker   = "</page>"
)

// PageScanner splits a dump into raw page units without buffering the file.
// Only the unit currently being assembled is held in memory.
type PageScanner struct {
	r      *bufio.Reader
	start  string
	end    string
	inside bool
	buf    strings.Builder
	offset int64
	err    error
}

// NewPageScanner returns a PageScanner splitting r on <page> and </page>.
func NewPageScanner(r io.Reader) *PageScanner {
	return NewPageScannerMarkers(r, PageStartMarker, PageEndMarker)
}

// NewPageScannerMarkers returns a PageScanner that treats every line
// containing start as the first line of a unit and the next line
// containing end as its last line.
func NewPageScannerMarkers(r io.Reader, start, end string) *PageScanner {
	return &PageScanner{
		r:     bufio.NewReaderSize(r, 1<<20),
		start: start,
		end:   end,
	}
}

// Next returns the next unit, start line through end line inclusive, with
// line endings intact. It returns io.EOF when the source is
// exhausted. A unit still open at the end of the source is discarded.
func (s *PageScanner) Next() (string, error) {
	for s.err == nil {
		line, err := s.r.ReadString('\n')
		s.offset += int64(len(line))
		if err != nil {
			s.err = err
		}
		if line == "" {
			continue
		}
		if unit, ok := s.step(line); ok {
			return unit, nil
		}
	}

	s.buf.Reset()
	s.inside = false
	return "", s.err
}

// Offset returns the number of bytes consumed from the source so far.
func (s *PageScanner) Offset() int64 {
	return s.offset
}

// step feeds one line through the OUTSIDE/INSIDE state machine and returns
// a completed unit when the line closes one.
func (s *PageScanner) step(line string) (string, bool) {
	if !s.inside {
		if !strings.Contains(line, s.start) {
			return "", false
		}
		s.inside = true
	}

	s.buf.WriteString(line)
	if !strings.Contains(line, s.end) {
		return "", false
	}

	unit := s.buf.String()
	s.buf.Reset()
	s.inside = false
	return unit, true
}
