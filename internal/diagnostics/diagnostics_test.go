package diagnostics

import (
	"bytes"
	"errors"
	"testing"
)

func TestFailWritesSingleLine(t *testing.T) {
	var buf bytes.Buffer
	code := Fail(&buf, errors.New("boom"))
	if code != 1 {
		t.Fatalf("code = %d, want 1", code)
	}
	if buf.String() != "Err: boom\n" {
		t.Fatalf("output = %q, want %q", buf.String(), "Err: boom\n")
	}
}
