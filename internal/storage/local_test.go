package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalStore_SaveOpenRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	name := ObjectName(7)
	if err := store.Save(ctx, name, strings.NewReader("%PDF-1.4 test")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rc, size, err := store.Open(ctx, name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Errorf("content = %q", data)
	}
	if size != int64(len(data)) {
		t.Errorf("size = %d, want %d", size, len(data))
	}
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	if _, _, err := store.Open(context.Background(), "nope.pdf"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLocalStore_StripsPathComponents(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "../../etc/evil.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The object is reachable under its base name only.
	rc, _, err := store.Open(ctx, "evil.pdf")
	if err != nil {
		t.Fatalf("Open by base name: %v", err)
	}
	rc.Close()
}

func TestObjectName_CarriesUserID(t *testing.T) {
	name := ObjectName(42)
	if !strings.HasPrefix(name, "patient-42-") {
		t.Errorf("name = %q, want patient-42- prefix", name)
	}
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("name = %q, want .pdf suffix", name)
	}
	if name == ObjectName(42) {
		t.Error("two names for the same user must differ")
	}
}
