package session

import (
	"bufio"
	"io"
)

// LineReader yields one line of user input per call, without the line
// terminator. It returns io.EOF when the user is done.
type LineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	sc *bufio.Scanner
}

// NewScanner reads lines from r.
func NewScanner(r io.Reader) LineReader {
	return &scannerReader{sc: bufio.NewScanner(r)}
}

func (s *scannerReader) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
