package source

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LineReader yields the lines of a text stream. Invalid UTF-8 bytes are
// replaced with U+FFFD, and "\n", "\r\n" and a lone "\r" all end a line.
// Reading stops after maxLines physical lines, blank lines included.
type LineReader struct {
	closer   io.Closer
	reader   *bufio.Reader
	maxLines int
	lineNum  int
	pending  [][]byte
	eof      bool
}

// Open opens path for line reading. Call Close when done.
func Open(path string, maxLines int) (*LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	lr := NewLineReader(f, maxLines)
	lr.closer = f
	return lr, nil
}

// NewLineReader reads lines from r. maxLines <= 0 means no limit.
func NewLineReader(r io.Reader, maxLines int) *LineReader {
	decoded := transform.NewReader(r, unicode.UTF8.NewDecoder())
	return &LineReader{
		reader:   bufio.NewReaderSize(decoded, 64*1024),
		maxLines: maxLines,
	}
}

// LineNum returns the number of lines returned so far.
func (lr *LineReader) LineNum() int {
	return lr.lineNum
}

// Next returns the next line without its terminator.
// It returns io.EOF at the end of the stream or once the line cap is hit.
func (lr *LineReader) Next() ([]byte, error) {
	if lr.maxLines > 0 && lr.lineNum >= lr.maxLines {
		return nil, io.EOF
	}

	for len(lr.pending) == 0 {
		if lr.eof {
			return nil, io.EOF
		}
		if err := lr.fill(); err != nil {
			return nil, err
		}
	}

	line := lr.pending[0]
	lr.pending = lr.pending[1:]
	lr.lineNum++
	return line, nil
}

// fill reads up to the next "\n" and splits the chunk on lone "\r".
func (lr *LineReader) fill() error {
	chunk, err := lr.reader.ReadBytes('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return err
		}
		lr.eof = true
		if len(chunk) == 0 {
			return nil
		}
	}

	chunk = bytes.TrimSuffix(chunk, []byte{'\n'})
	chunk = bytes.TrimSuffix(chunk, []byte{'\r'})
	lr.pending = append(lr.pending, bytes.Split(chunk, []byte{'\r'})...)
	return nil
}

// Close releases the underlying file, if any.
func (lr *LineReader) Close() error {
	if lr.closer == nil {
		return nil
	}
	err := lr.closer.Close()
	lr.closer = nil
	return err
}
