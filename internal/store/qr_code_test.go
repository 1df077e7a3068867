package store

import (
	"testing"
	"time"

	"queueless/internal/database"
)

func setupQRTestDB(t *testing.T) *QRStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewQRStore(db)
}

func TestQRSeedData(t *testing.T) {
	qs := setupQRTestDB(t)

	codes, err := qs.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(codes) != 4 {
		t.Fatalf("expected 4 seed qr codes, got %d", len(codes))
	}
	for i, code := range codes {
		if code.TableNumber != i+1 {
			t.Errorf("codes[%d].TableNumber = %d, want %d", i, code.TableNumber, i+1)
		}
		wantURL := "/#/menu/" + string(rune('0'+i+1))
		if code.QRURL != wantURL {
			t.Errorf("codes[%d].QRURL = %q, want %q", i, code.QRURL, wantURL)
		}
	}
}

func TestQRCreateAndDelete(t *testing.T) {
	qs := setupQRTestDB(t)

	code, err := qs.Create("Patio 1", 12, "/#/menu/12")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if code.ID == "" {
		t.Error("expected generated id")
	}
	if code.TableName != "Patio 1" || code.TableNumber != 12 {
		t.Errorf("unexpected code: %+v", code)
	}
	if code.CreatedDate != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("created date = %q, want today", code.CreatedDate)
	}

	count, err := qs.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}

	if err := qs.Delete(code.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := qs.GetByID(code.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
