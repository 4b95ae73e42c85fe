package tabular

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInputTooLarge is returned when an upload exceeds the configured limit.
var ErrInputTooLarge = errors.New("input exceeds maximum size")

// NewTextReader wraps r so that a leading UTF-8 byte order mark is dropped
// and invalid UTF-8 sequences are replaced with U+FFFD.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}

// CountingReader counts the bytes read through it.
type CountingReader struct {
	r io.Reader
	n int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{r: r}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// BytesRead returns the number of bytes read so far.
func (c *CountingReader) BytesRead() int64 {
	return c.n
}

// ReadText reads the whole input as sanitized text. A positive maxBytes
// caps the raw input size.
func ReadText(r io.Reader, maxBytes int64) (string, error) {
	counter := NewCountingReader(r)
	var src io.Reader = counter
	if maxBytes > 0 {
		src = io.LimitReader(counter, maxBytes+1)
	}

	data, err := io.ReadAll(NewTextReader(src))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if maxBytes > 0 && counter.BytesRead() > maxBytes {
		return "", fmt.Errorf("%w (%d bytes)", ErrInputTooLarge, maxBytes)
	}
	return string(data), nil
}
