package dataset

import (
	"io"
	"strings"
	"testing"
)

// chunkReader returns at most n bytes per Read, to exercise rune sequences
// split across reads.
type chunkReader struct {
	r io.Reader
	n int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.n {
		p = p[:c.n]
	}
	return c.r.Read(p)
}

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bom stripped", "\xEF\xBB\xBFuser_id", "user_id"},
		{"no bom preserved", "user_id", "user_id"},
		{"short input preserved", "ab", "ab"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newBOMSkippingReader(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUTF8Sanitizer_ReplacesInvalidBytes(t *testing.T) {
	got, err := io.ReadAll(newUTF8Sanitizer(strings.NewReader("ab\xFFcd")))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "ab�cd" {
		t.Errorf("got %q, want invalid byte replaced", got)
	}
}

func TestUTF8Sanitizer_PassesValidInput(t *testing.T) {
	input := "héllo, wörld — 映画"
	got, err := io.ReadAll(newUTF8Sanitizer(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != input {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestUTF8Sanitizer_RuneSplitAcrossReads(t *testing.T) {
	// "é" is two bytes; a 1-byte chunk size forces the split.
	input := "caf\xC3\xA9 ok"
	r := newUTF8Sanitizer(&chunkReader{r: strings.NewReader(input), n: 1})

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "café ok" {
		t.Errorf("got %q, want split rune reassembled", got)
	}
}

func TestCountingReader(t *testing.T) {
	cr := newCountingReader(strings.NewReader("12345"))
	if _, err := io.ReadAll(cr); err != nil {
		t.Fatalf("read: %v", err)
	}
	if cr.bytesRead != 5 {
		t.Errorf("bytesRead = %d, want 5", cr.bytesRead)
	}
}
