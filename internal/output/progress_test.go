package output

import (
	"bytes"
	"strings"
	"testing"
)

// A bytes.Buffer is not a TTY, so bars render only on completion and
// spinners print their message once.

func TestProgressBar_NonTTYEmitsOnlyCompletion(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(3, "Scanning /boot")
	p.SetWriter(&buf)

	p.Increment()
	p.Increment()
	if buf.Len() != 0 {
		t.Errorf("partial progress should not render on non-TTY, got %q", buf.String())
	}

	p.Increment()
	p.Finish()

	out := buf.String()
	if !strings.Contains(out, "100%") {
		t.Errorf("completed bar missing 100%%: %q", out)
	}
	if !strings.Contains(out, "Scanning /boot") {
		t.Errorf("completed bar missing description: %q", out)
	}
	if strings.Count(out, "100%") != 1 {
		t.Errorf("completion line rendered more than once: %q", out)
	}
}

func TestProgressBar_IncrementClampsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(1, "clamp")
	p.SetWriter(&buf)

	p.Increment()
	p.Increment() // past the total
	p.Finish()

	if !strings.Contains(buf.String(), "100%") {
		t.Errorf("clamped bar should still report completion: %q", buf.String())
	}
}

func TestSpinner_NonTTYPrintsOnce(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("Reading package inventory")
	s.SetWriter(&buf)

	s.Start()
	s.Stop()

	out := buf.String()
	if out != "Reading package inventory...\n" {
		t.Errorf("spinner output = %q, want single message line", out)
	}
}

func TestSpinner_DoubleStopIsSafe(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("idle")
	s.SetWriter(&buf)

	s.Start()
	s.Stop()
	s.Stop() // must not panic or double-close
}
