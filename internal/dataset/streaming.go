package dataset

// streaming.go wraps the ingestion byte stream so the CSV decoder only ever
// sees clean UTF-8:
//
//   - bomSkippingReader drops the UTF-8 BOM (0xEF 0xBB 0xBF) that Windows
//     tools prepend to exports
//   - utf8Sanitizer replaces invalid byte sequences with U+FFFD on the fly
//   - countingReader tracks bytes read for the ingestion stats
//
// All three operate in constant memory regardless of dataset size.

import (
	"io"
	"unicode/utf8"
)

type bomSkippingReader struct {
	r       io.Reader
	checked bool
	stash   []byte // bytes read during BOM detection that were not a BOM
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{r: r}
}

func (b *bomSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		var buf [3]byte
		n, err := io.ReadFull(b.r, buf[:])
		if n == 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
			// BOM found, swallow it.
		} else {
			b.stash = append(b.stash, buf[:n]...)
		}
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
	}

	if len(b.stash) > 0 {
		n := copy(p, b.stash)
		b.stash = b.stash[n:]
		return n, nil
	}
	return b.r.Read(p)
}

// utf8Sanitizer reads from the underlying stream and emits valid UTF-8,
// substituting U+FFFD for invalid bytes. A multi-byte rune split across two
// underlying reads is held back until its remaining bytes arrive.
type utf8Sanitizer struct {
	r       io.Reader
	out     []byte // sanitized bytes not yet served
	pending []byte // possibly-incomplete trailing rune
	err     error
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	for len(s.out) == 0 && s.err == nil {
		s.fill()
	}
	if len(s.out) > 0 {
		n := copy(p, s.out)
		s.out = s.out[n:]
		return n, nil
	}
	return 0, s.err
}

func (s *utf8Sanitizer) fill() {
	buf := make([]byte, 4096)
	n, err := s.r.Read(buf)

	data := append(s.pending, buf[:n]...)
	s.pending = nil
	atEOF := err != nil

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(data) {
				// Might be the prefix of a rune completed by the
				// next read.
				s.pending = data
				break
			}
			s.out = utf8.AppendRune(s.out, utf8.RuneError)
			data = data[1:]
			continue
		}
		s.out = append(s.out, data[:size]...)
		data = data[size:]
	}

	s.err = err
}

type countingReader struct {
	r         io.Reader
	bytesRead int64
}

func newCountingReader(r io.Reader) *countingReader {
	return &countingReader{r: r}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.bytesRead += int64(n)
	return n, err
}
