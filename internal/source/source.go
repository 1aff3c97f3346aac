// Package source acquires the raw dataset byte stream for ingestion.
//
// Acquisition is deliberately outside the dataset package: the core
// consumes an io.Reader and never fetches anything itself. A failed
// acquisition surfaces as an *AcquisitionError, which callers can tell
// apart from dataset.ErrEmptyDataset to give different guidance. There is
// no retry here; retrying is an explicit re-invocation by the caller.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// AcquisitionError means the dataset byte stream could not be obtained.
type AcquisitionError struct {
	// Source identifies what was being opened (path or URL).
	Source string
	// Status is the HTTP status code for remote sources, 0 otherwise.
	Status int
	// Err is the underlying cause, nil for pure status failures.
	Err error
}

func (e *AcquisitionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("acquire dataset %s: unexpected status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("acquire dataset %s: %v", e.Source, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Source provides the dataset byte stream. Open returns the stream, the
// total size in bytes when known (-1 otherwise), and an *AcquisitionError
// on failure. The caller owns closing the stream.
type Source interface {
	// Open acquires the stream. Blocking, so it takes a context.
	Open(ctx context.Context) (io.ReadCloser, int64, error)
	// Describe identifies the source for logs and the ingestion history.
	Describe() string
}

// New returns a source for the given location: HTTP(S) URLs become an
// HTTPSource, everything else a FileSource.
func New(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location, Client: &http.Client{Timeout: 30 * time.Second}}
	}
	return &FileSource{Path: location}
}

// FileSource reads the dataset from a local file.
type FileSource struct {
	Path string
}

func (s *FileSource) Open(_ context.Context) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, 0, &AcquisitionError{Source: s.Path, Err: err}
	}
	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return f, size, nil
}

func (s *FileSource) Describe() string { return s.Path }

// HTTPSource fetches the dataset over HTTP. Any non-2xx response is an
// acquisition failure carrying the status code.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, 0, &AcquisitionError{Source: s.URL, Err: err}
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, &AcquisitionError{Source: s.URL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, 0, &AcquisitionError{Source: s.URL, Status: resp.StatusCode}
	}
	return resp.Body, resp.ContentLength, nil
}

func (s *HTTPSource) Describe() string { return s.URL }
