package source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("user_id,movie_title\nu1,A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, size, err := (&FileSource{Path: path}).Open(context.Background())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if int64(len(data)) != size {
		t.Errorf("size = %d, want %d", size, len(data))
	}
}

func TestFileSource_MissingFileIsAcquisitionError(t *testing.T) {
	_, _, err := (&FileSource{Path: "/does/not/exist.csv"}).Open(context.Background())

	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("error = %v, want *AcquisitionError", err)
	}
	if acqErr.Status != 0 {
		t.Errorf("file error should carry no HTTP status, got %d", acqErr.Status)
	}
}

func TestHTTPSource_Open(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "user_id,movie_title\nu1,A\n")
	}))
	defer srv.Close()

	rc, _, err := (&HTTPSource{URL: srv.URL, Client: srv.Client()}).Open(context.Background())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected body bytes")
	}
}

func TestHTTPSource_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := (&HTTPSource{URL: srv.URL, Client: srv.Client()}).Open(context.Background())

	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("error = %v, want *AcquisitionError", err)
	}
	if acqErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", acqErr.Status)
	}
}

func TestNew_PicksSourceByScheme(t *testing.T) {
	if _, ok := New("https://example.com/data.csv").(*HTTPSource); !ok {
		t.Error("https URL should yield an HTTPSource")
	}
	if _, ok := New("/var/data/data.csv").(*FileSource); !ok {
		t.Error("plain path should yield a FileSource")
	}
}
