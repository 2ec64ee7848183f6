package storage

import (
	"path/filepath"
	"testing"
)

func TestStore_GetSetRemove(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pfjc.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if _, ok, err := st.Get("missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := st.Set("k", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := st.Get("k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `[1,2,3]` {
		t.Fatalf("unexpected value: %s", v)
	}

	// 覆盖写
	if err := st.Set("k", []byte(`{}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = st.Get("k")
	if string(v) != `{}` {
		t.Fatalf("overwrite failed: %s", v)
	}

	if err := st.Remove("k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := st.Get("k"); ok {
		t.Fatalf("key should be gone")
	}
}

func TestStore_LoadRowsOverSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pfjc.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	rows := LoadRows(st)
	if len(rows) != 1 {
		t.Fatalf("expected default row, got %d", len(rows))
	}

	rows[0].Cash = "88"
	if _, err := SaveRows(st, rows); err != nil {
		t.Fatalf("save: %v", err)
	}

	again := LoadRows(st)
	if len(again) != 1 || again[0].Cash != "88" {
		t.Fatalf("sqlite round trip mismatch: %+v", again)
	}
}
