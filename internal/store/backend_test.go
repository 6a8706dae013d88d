package store

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

// memBackend is an in-memory Backend for store tests, with switchable
// failure modes to exercise the degradation paths.
type memBackend struct {
	data    map[string]string
	failGet bool
	failSet bool
	sets    int
}

func newMemBackend() *memBackend {
	return &memBackend{data: map[string]string{}}
}

func (b *memBackend) GetString(key string) (string, error) {
	if b.failGet {
		return "", errors.New("backend unavailable")
	}
	v, ok := b.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (b *memBackend) SetString(key, value string) error {
	if b.failSet {
		return errors.New("backend unavailable")
	}
	b.sets++
	b.data[key] = value
	return nil
}

func (b *memBackend) Close() error { return nil }

func TestBoltBackendRoundTrip(t *testing.T) {
	backend, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer backend.Close()

	if _, err := backend.GetString("missing"); err != ErrKeyNotFound {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := backend.SetString("k", "v"); err != nil {
		t.Fatal(err)
	}
	got, err := backend.GetString("k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "v" {
		t.Fatalf("got %q", got)
	}

	// values survive reopening the file
	path := backend.db.Path()
	backend.Close()
	reopened, err := OpenBolt(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	got, err = reopened.GetString("k")
	if err != nil || got != "v" {
		t.Fatalf("after reopen: %q, %v", got, err)
	}
}
