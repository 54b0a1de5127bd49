package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrBlobNotFound", err)
	}

	if err := store.Put(ctx, "ideas", []byte(`[1]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(ctx, "ideas", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}

	got, err := store.Get(ctx, "ideas")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `[1,2]` {
		t.Errorf("Get() = %s, want [1,2]", got)
	}

	if err := store.Delete(ctx, "ideas"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "ideas"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrBlobNotFound", err)
	}
	if err := store.Delete(ctx, "ideas"); err != nil {
		t.Errorf("Delete() twice error = %v", err)
	}
}

func TestMemoryBlobStore(t *testing.T) {
	exerciseStore(t, NewMemoryBlobStore())
}

func TestMemoryBlobStore_CopiesValues(t *testing.T) {
	store := NewMemoryBlobStore()
	ctx := context.Background()

	buf := []byte("abc")
	_ = store.Put(ctx, "k", buf)
	buf[0] = 'z'

	got, _ := store.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %s", got)
	}
}

func TestSQLiteBlobStore(t *testing.T) {
	store, err := NewSQLiteBlobStore(context.Background(), filepath.Join(t.TempDir(), "blobs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBlobStore() error = %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)
}

func TestWithPrefix(t *testing.T) {
	mem := NewMemoryBlobStore()
	store := WithPrefix(mem, "techlearners")
	ctx := context.Background()

	if err := store.Put(ctx, "auth", []byte("x")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := mem.Get(ctx, "techlearners-auth"); err != nil {
		t.Errorf("underlying key missing: %v", err)
	}
	if WithPrefix(mem, "") != BlobStore(mem) {
		t.Error("WithPrefix(\"\") should return the store unchanged")
	}
}

func TestMigrationNames_Ordered(t *testing.T) {
	names, err := migrationNames()
	if err != nil {
		t.Fatalf("migrationNames() error = %v", err)
	}
	if len(names) == 0 || names[0] != "001_blobs.sql" {
		t.Fatalf("migrationNames() = %v, want 001_blobs.sql first", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("migrations out of order: %v", names)
		}
	}
}
