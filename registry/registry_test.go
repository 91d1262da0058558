package registry

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sumanth789856/Get-Updated/models"
	"github.com/Sumanth789856/Get-Updated/policy"
	"github.com/Sumanth789856/Get-Updated/storage"
)

var (
	studentA = policy.Actor{Username: "alice", Role: policy.RoleStudent}
	studentB = policy.Actor{Username: "bob", Role: policy.RoleStudent}
	teacher  = policy.Actor{Username: "mr-t", Role: policy.RoleTeacher}
	admin    = policy.Actor{Username: "root", Role: policy.RoleAdmin}
	nobody   = policy.Actor{}
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection so every statement sees the same :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Note{}, &models.Announcement{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// memBlobs is an in-memory blob store for tests.
type memBlobs struct {
	objects map[string][]byte
	failPut bool
}

func newMemBlobs() *memBlobs { return &memBlobs{objects: map[string][]byte{}} }

func (m *memBlobs) Put(_ context.Context, key string, r io.Reader) error {
	if m.failPut {
		return io.ErrClosedPipe
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = b
	return nil
}

func (m *memBlobs) Get(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func testNotes(t *testing.T) (*Notes, *memBlobs, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	blobs := newMemBlobs()
	return NewNotes(db, blobs, zap.NewNop()), blobs, db
}
