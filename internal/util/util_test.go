package util

import (
	"testing"

	"github.com/fatih/color"
)

func TestEscapeAwareRuneCountInString(t *testing.T) {
	var bold = color.New(color.Bold)
	var myColor = color.New(color.FgBlue)

	s := myColor.Sprintf("•ABC%s%s", bold.Sprintf("DEF"), "\x1B[00;38;5;244m\x1B[m\x1B[00;38;5;33mGHI\x1B[0m")
	count := EscapeAwareRuneCountInString(s)
	if count != 10 {
		t.Errorf("Count was incorrect, got: %d, want: %d.", count, 10)
	}
}

func TestRightPad(t *testing.T) {
	if got := RightPad("abc", 6); got != "abc   " {
		t.Fatalf("unexpected %q", got)
	}
	if got := RightPad("abcdef", 3); got != "abcdef" {
		t.Fatalf("unexpected %q", got)
	}
	colored := color.New(color.FgRed).Sprint("abc")
	if got := EscapeAwareRuneCountInString(RightPad(colored, 5)); got != 5 {
		t.Fatalf("unexpected length %d", got)
	}
}

func TestIndent(t *testing.T) {
	got := Indent("the quick brown fox jumps", 10, "  ")
	expect := "  the quick\n  brown fox\n  jumps"
	if got != expect {
		t.Fatalf("expected %q, got %q", expect, got)
	}
}
