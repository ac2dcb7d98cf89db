package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsight.db")
	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer kv.Close()

	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, KeyProfile); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Put(ctx, KeyProfile, []byte(`{"salary":50000}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	value, ok, err := kv.Get(ctx, KeyProfile)
	if err != nil || !ok {
		t.Fatalf("Get after Put: ok=%v err=%v", ok, err)
	}
	if string(value) != `{"salary":50000}` {
		t.Fatalf("value = %s", value)
	}

	// Wholesale replacement.
	if err := kv.Put(ctx, KeyProfile, []byte(`{"salary":60000}`)); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	value, _, _ = kv.Get(ctx, KeyProfile)
	if string(value) != `{"salary":60000}` {
		t.Fatalf("value after overwrite = %s", value)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	input := []byte("abc")
	if err := kv.Put(ctx, KeyHistory, input); err != nil {
		t.Fatalf("Put: %v", err)
	}
	input[0] = 'z'

	value, ok, err := kv.Get(ctx, KeyHistory)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(value) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %s", value)
	}
}
