package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalPutGet(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, "report.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rc, err := s.Get(ctx, "report.txt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(b) != "hello" {
		t.Errorf("got %q, want %q", b, "hello")
	}
}

func TestLocalGetMissing(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if _, err := s.Get(context.Background(), "nope.txt"); err != ErrNotExist {
		t.Errorf("Get missing = %v, want ErrNotExist", err)
	}
}

func TestLocalDeleteIdempotent(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, "f.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "f.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// second delete of the same key must not error
	if err := s.Delete(ctx, "f.txt"); err != nil {
		t.Errorf("Delete of missing key = %v, want nil", err)
	}
}

func TestLocalKeyTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, "../../etc/evil", strings.NewReader("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// flattened to the base name inside the directory
	if _, err := s.Get(ctx, "evil"); err != nil {
		t.Errorf("flattened key not found: %v", err)
	}
}
