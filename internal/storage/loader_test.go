package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
)

func TestLoadRows_EmptyStorage(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	rows := LoadRows(kv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 default row, got %d", len(rows))
	}
	if rows[0].ID == "" {
		t.Fatalf("default row missing id")
	}
}

func TestLoadRows_NotJSON(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	if err := kv.Set(RowsKey, []byte("not json")); err != nil {
		t.Fatalf("set: %v", err)
	}

	rows := LoadRows(kv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 default row, got %d", len(rows))
	}
	// 损坏数据应被清除
	if _, ok, _ := kv.Get(RowsKey); ok {
		t.Fatalf("corrupt value should have been removed")
	}
}

func TestLoadRows_BareObjectWrapped(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	if err := kv.Set(RowsKey, []byte(`{"id":"x","date":"2024-01-01","wechat":"12.5"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	rows := LoadRows(kv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID != "x" || rows[0].Wechat != "12.5" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if rows[0].Date.Year() != 2024 || rows[0].Date.Month() != time.January {
		t.Fatalf("date not rehydrated: %v", rows[0].Date)
	}

	// 必须以数组形态回写
	raw, ok, err := kv.Get(RowsKey)
	if err != nil || !ok {
		t.Fatalf("expected repaired value persisted")
	}
	var arr []model.ReportRow
	if err := json.Unmarshal(raw, &arr); err != nil {
		t.Fatalf("repaired value is not an array: %v", err)
	}
	if len(arr) != 1 || arr[0].ID != "x" {
		t.Fatalf("unexpected repaired array: %+v", arr)
	}
}

func TestLoadRows_FiltersInvalidElements(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	if err := kv.Set(RowsKey, []byte(`[{"id":"x","date":"2024-01-01"},{"foo":"bar"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	rows := LoadRows(kv)
	if len(rows) != 1 {
		t.Fatalf("expected invalid element dropped, got %d rows", len(rows))
	}
	if rows[0].ID != "x" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestLoadRows_AllInvalid(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	if err := kv.Set(RowsKey, []byte(`[{"foo":"bar"},123]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	rows := LoadRows(kv)
	if len(rows) != 1 || rows[0].ID == "" {
		t.Fatalf("expected default row, got %+v", rows)
	}
	if _, ok, _ := kv.Get(RowsKey); ok {
		t.Fatalf("storage should have been cleared")
	}
}

func TestLoadRows_EmptyArray(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	if err := kv.Set(RowsKey, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	rows := LoadRows(kv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 default row, got %d", len(rows))
	}
}

func TestLoadRows_UnparsableDateFallsBackToNow(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	if err := kv.Set(RowsKey, []byte(`[{"id":"x","date":"鸡蛋"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	before := time.Now().Add(-time.Minute)
	rows := LoadRows(kv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Date.Before(before) {
		t.Fatalf("date should fall back to now, got %v", rows[0].Date)
	}
}

func TestSaveRows_EmptyCollectionFallsBack(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	saved, err := SaveRows(kv, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(saved) != 1 || saved[0].ID == "" {
		t.Fatalf("expected single default row, got %+v", saved)
	}
	if _, ok, _ := kv.Get(RowsKey); !ok {
		t.Fatalf("expected value persisted")
	}
}

func TestSaveRows_RoundTrip(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	row := model.NewRow()
	row.Wechat = "100.5"
	row.People = "30"

	if _, err := SaveRows(kv, []model.ReportRow{row}); err != nil {
		t.Fatalf("save: %v", err)
	}

	rows := LoadRows(kv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID != row.ID || rows[0].Wechat != "100.5" || rows[0].People != "30" {
		t.Fatalf("round trip mismatch: %+v", rows[0])
	}
}
