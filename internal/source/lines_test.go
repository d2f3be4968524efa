package source

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, lr *LineReader) []string {
	t.Helper()
	var out []string
	for {
		line, err := lr.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, string(line))
	}
}

func TestLineReader_Terminators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"lf", "a\nb\n", []string{"a", "b"}},
		{"no_trailing_newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"lone_cr", "a\rb\rc", []string{"a", "b", "c"}},
		{"mixed", "a\r\rb\r\nc\n", []string{"a", "", "b", "c"}},
		{"trailing_cr_at_eof", "a\r", []string{"a"}},
		{"blank_lines", "\n\n  \n", []string{"", "", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLineReader(strings.NewReader(tt.input), 0)
			assert.Equal(t, tt.expected, readAll(t, lr))
		})
	}
}

func TestLineReader_MaxLinesCountsBlankLines(t *testing.T) {
	lr := NewLineReader(strings.NewReader("a\n\nb\nc\n"), 3)
	assert.Equal(t, []string{"a", "", "b"}, readAll(t, lr))
	assert.Equal(t, 3, lr.LineNum())

	// Still at EOF on later calls.
	_, err := lr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestLineReader_MaxLinesAcrossLoneCR(t *testing.T) {
	lr := NewLineReader(strings.NewReader("a\rb\rc\n"), 2)
	assert.Equal(t, []string{"a", "b"}, readAll(t, lr))
}

func TestLineReader_ReplacesInvalidUTF8(t *testing.T) {
	lr := NewLineReader(strings.NewReader("{\"a\":\"x\xffy\"}\n"), 0)
	lines := readAll(t, lr)
	require.Len(t, lines, 1)
	assert.Equal(t, "{\"a\":\"x�y\"}", lines[0])
}

func TestLineReader_LongLine(t *testing.T) {
	long := strings.Repeat("x", 300*1024)
	lr := NewLineReader(strings.NewReader(long+"\nshort\n"), 0)
	lines := readAll(t, lr)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], len(long))
	assert.Equal(t, "short", lines[1])
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.jsonl", "{\"type\":\"a\"}\n{\"type\":\"b\"}\n", 0)

	lr, err := Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"type":"a"}`, `{"type":"b"}`}, readAll(t, lr))
	assert.NoError(t, lr.Close())
	assert.NoError(t, lr.Close())

	_, err = Open(filepath.Join(dir, "missing.jsonl"), 0)
	assert.Error(t, err)
}
