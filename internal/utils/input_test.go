package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestParseLine(t *testing.T) {
	testCases := []struct {
		name     string
		given    string
		want     string
		wantExit bool
	}{
		{name: "plain message", given: "check my vpn\n", want: "check my vpn"},
		{name: "surrounding whitespace", given: "  hello  \n", want: "hello"},
		{name: "quit", given: "quit\n", wantExit: true},
		{name: "exit", given: "exit\n", wantExit: true},
		{name: "q", given: "q\n", wantExit: true},
		{name: "uppercase quit", given: "QUIT\n", wantExit: true},
		{name: "empty", given: "\n", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLine(tc.given)
			if tc.wantExit {
				if !errors.Is(err, ErrUserInitiatedExit) {
					t.Fatalf("expected ErrUserInitiatedExit, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testboil.FailTestIfDiff(t, got, tc.want)
		})
	}
}

func TestLineReader_ReturnsEveryBufferedLine(t *testing.T) {
	// Piped input arrives many lines per underlying read; each Read call
	// must still hand out exactly one of them.
	lr := NewLineReader(strings.NewReader("first\nsecond\nthird\n"))
	for _, want := range []string{"first", "second", "third"} {
		got, err := lr.Read()
		if err != nil {
			t.Fatalf("unexpected error before %q: %v", want, err)
		}
		testboil.FailTestIfDiff(t, got, want)
	}
	if _, err := lr.Read(); !errors.Is(err, ErrUserInitiatedExit) {
		t.Fatalf("expected ErrUserInitiatedExit after final line, got: %v", err)
	}
}

func TestLineReader_QuitKeywordMidStream(t *testing.T) {
	lr := NewLineReader(strings.NewReader("hello\nquit\nnever read\n"))
	got, err := lr.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got, "hello")
	if _, err := lr.Read(); !errors.Is(err, ErrUserInitiatedExit) {
		t.Fatalf("expected ErrUserInitiatedExit on quit keyword, got: %v", err)
	}
}

func TestLineReader_EOFMeansExit(t *testing.T) {
	lr := NewLineReader(strings.NewReader(""))
	if _, err := lr.Read(); !errors.Is(err, ErrUserInitiatedExit) {
		t.Fatalf("expected ErrUserInitiatedExit on EOF, got: %v", err)
	}
}

func TestLineReader_UnterminatedFinalLine(t *testing.T) {
	lr := NewLineReader(strings.NewReader("no newline at the end"))
	got, err := lr.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got, "no newline at the end")
	if _, err := lr.Read(); !errors.Is(err, ErrUserInitiatedExit) {
		t.Fatalf("expected ErrUserInitiatedExit after final line, got: %v", err)
	}
}
