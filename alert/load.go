package alert

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyFile is returned when the alert file holds no non-blank line.
	ErrEmptyFile = errors.New("alert file is empty")
	// ErrEmptyAlert is returned when the last line is not a non-empty JSON object.
	ErrEmptyAlert = errors.New("alert is not a non-empty JSON object")
)

const maxLineSize = 4 * 1024 * 1024

// SyntaxError reports a last line that could not be parsed as JSON.
type SyntaxError struct {
	Line []byte
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("failed to parse the last line as JSON: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// LoadFile reads the alert file at path and parses its last non-empty line.
func LoadFile(path string) (*Alert, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open alert file %q", path)
	}
	defer f.Close()

	line, err := lastLine(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read alert file %q", path)
	}
	if line == nil {
		return nil, ErrEmptyFile
	}
	return Parse(line)
}

// Parse decodes one JSON alert record.
func Parse(line []byte) (*Alert, error) {
	var v interface{}
	if err := json.Unmarshal(line, &v); err != nil {
		return nil, &SyntaxError{Line: line, Err: err}
	}
	raw, ok := v.(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil, ErrEmptyAlert
	}
	return decode(raw)
}

func lastLine(f *os.File) ([]byte, error) {
	var last []byte
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 64*1024), maxLineSize)
	for s.Scan() {
		if l := bytes.TrimSpace(s.Bytes()); len(l) > 0 {
			last = append(last[:0], l...)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return last, nil
}
