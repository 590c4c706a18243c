package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
)

// ErrUserInitiatedExit signals that the user asked to leave the interactive
// loop, either with a quit keyword or an interrupt. Callers treat it as a
// clean exit, not a failure.
var ErrUserInitiatedExit = errors.New("user initiated exit")

var quitters = []string{"q", "quit", "exit"}

// ParseLine trims the raw line and maps the quit keywords onto
// ErrUserInitiatedExit.
func ParseLine(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if slices.Contains(quitters, strings.ToLower(trimmed)) {
		return "", ErrUserInitiatedExit
	}
	return trimmed, nil
}

// LineReader hands out one line per Read call from a single buffered reader.
// The buffer must outlive individual calls: on piped or redirected input one
// read can slurp several lines at once, and a reader constructed per call
// would drop whatever it had buffered beyond the first line.
type LineReader struct {
	r *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// StdinLineReader is the interactive default.
func StdinLineReader() *LineReader {
	return NewLineReader(os.Stdin)
}

// Read returns the next line, or ErrUserInitiatedExit on a quit keyword,
// interrupt or end of input, so that ctrl+c during a prompt ends the session
// instead of killing the process mid-write.
func (lr *LineReader) Read() (string, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	// Buffered so the read goroutine can complete its send and exit even
	// when the signal case wins the select below.
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		userInput, err := lr.r.ReadString('\n')
		if err != nil {
			// A final line without a trailing newline still counts.
			if errors.Is(err, io.EOF) && userInput != "" {
				inputChan <- userInput
				return
			}
			errChan <- err
			return
		}
		inputChan <- userInput
	}()

	select {
	case <-sigChan:
		return "", ErrUserInitiatedExit
	case err := <-errChan:
		if errors.Is(err, io.EOF) {
			return "", ErrUserInitiatedExit
		}
		return "", fmt.Errorf("failed to read user input: %w", err)
	case userInput := <-inputChan:
		return ParseLine(userInput)
	}
}
