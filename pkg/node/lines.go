package node

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// ErrUndecodable is returned by LineReader.Next for a line that is not valid UTF-8
var ErrUndecodable = errors.New("line is not valid UTF-8")

// LineReader reads text lines lazily from a byte stream.
// Line terminators (\n or \r\n) are stripped and a final line without a
// terminator is still returned as is, including a lone trailing \r.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader creates a LineReader over r
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next blocks until a full line is available. It returns io.EOF once the
// stream is exhausted and ErrUndecodable for a line that cannot be decoded;
// the reader is positioned after that line so the caller can keep reading.
func (lr *LineReader) Next() (string, error) {
	raw, err := lr.r.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(raw) == 0) {
		return "", err
	}

	if bytes.HasSuffix(raw, []byte("\n")) {
		raw = bytes.TrimSuffix(raw[:len(raw)-1], []byte("\r"))
	}

	if !utf8.Valid(raw) {
		return "", ErrUndecodable
	}
	return string(raw), nil
}
