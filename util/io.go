package util

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
)

// longest line returned by ReadLines, longer lines are drained and flagged
const MAX_LINE_LENGTH = 1024 * 1024

type Line struct {
	Text string
	// set if the line exceeded MAX_LINE_LENGTH, Text is empty then
	TooLong bool
}

// Iterates the lines of reader, yielding the 1-based line number and the line
// without its trailing "\r\n" or "\n".
//
// Iteration stops at EOF or on the first read error, which is stored in err.
// An overlong line does not stop the iteration.
func ReadLines(reader io.Reader, err *error) func(yield func(int, Line) bool) {
	return func(yield func(int, Line) bool) {
		buffered := bufio.NewReaderSize(reader, 64*1024)
		text := make([]byte, 0, 1024)
		too_long := false
		line_no := 0
		for {
			chunk, is_prefix, read_err := buffered.ReadLine()
			if read_err != nil {
				if !errors.Is(read_err, io.EOF) && err != nil {
					*err = read_err
				}
				return
			}
			if !too_long {
				text = append(text, chunk...)
				if len(text) > MAX_LINE_LENGTH {
					too_long = true
					text = text[:0]
				}
			}
			if is_prefix {
				continue
			}
			line_no += 1
			line := Line{Text: strings.TrimRight(string(text), "\r"), TooLong: too_long}
			text = text[:0]
			too_long = false
			if !yield(line_no, line) {
				return
			}
		}
	}
}

func WriteJSON[T any](writer io.Writer, value T) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func WriteJSONToFile[T any](value T, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, value)
}
