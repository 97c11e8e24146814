package gift

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProgressDatabaseAddGift(t *testing.T) {
	db := NewProgressDatabase()
	changes := 0
	db.OnChange(func() { changes++ })

	if !db.AddGift("Abigail", "66", Love) {
		t.Fatalf("first add should store the gift")
	}
	if db.AddGift("Abigail", "66", Love) {
		t.Fatalf("duplicate add should be ignored")
	}
	if !db.AddGifts("Abigail", Love, []string{"66", "", "72"}) {
		t.Fatalf("batch with a new item should report a change")
	}
	if changes != 2 {
		t.Fatalf("expected 2 change notifications, got %d", changes)
	}

	got := db.GiftsForTaste("Abigail", Love)
	if diff := cmp.Diff([]string{"66", "72"}, got); diff != "" {
		t.Fatalf("GiftsForTaste mismatch (-want +got):\n%s", diff)
	}
	if got := db.GiftsForTaste("Abigail", Hate); len(got) != 0 {
		t.Fatalf("expected no hated gifts, got %v", got)
	}
}

func TestProgressDatabaseRejectsInvalid(t *testing.T) {
	db := NewProgressDatabase()
	if db.AddGift("", "66", Love) {
		t.Fatalf("empty character should be rejected")
	}
	if db.AddGift("Abigail", "66", Unknown) {
		t.Fatalf("unknown taste should be rejected")
	}
	if db.AddGifts("Abigail", Like, nil) {
		t.Fatalf("empty batch should not report a change")
	}
}

func TestProgressDatabaseReturnsCopy(t *testing.T) {
	db := NewProgressDatabase()
	db.AddGift("Abigail", "66", Love)
	got := db.GiftsForTaste("Abigail", Love)
	got[0] = "mutated"
	if db.GiftsForTaste("Abigail", Love)[0] != "66" {
		t.Fatalf("GiftsForTaste must not expose internal storage")
	}
}

func TestProgressDatabaseConcurrent(t *testing.T) {
	db := NewProgressDatabase()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db.AddGift("Abigail", "66", Love)
			_ = db.GiftsForTaste("Abigail", Love)
		}()
	}
	wg.Wait()
	if got := db.GiftsForTaste("Abigail", Love); len(got) != 1 {
		t.Fatalf("expected one stored gift, got %v", got)
	}
}

func TestEngineDatabase(t *testing.T) {
	e := newTestEngine(nil)
	db := NewEngineDatabase(e, testCatalog())

	if db.AddGift("Abigail", "72", Love) || db.AddGifts("Abigail", Love, []string{"72"}) {
		t.Fatalf("engine database is read-only")
	}

	tests := []struct {
		taste Taste
		want  []string
	}{
		{Love, []string{"72"}},
		{Like, []string{"613", "80"}},
		{Neutral, []string{"770"}},
		{Dislike, []string{"100", "101", "168", "330"}},
		{Hate, []string{"167"}},
		{Unknown, nil},
	}
	for _, tt := range tests {
		got := db.GiftsForTaste("Abigail", tt.taste)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("GiftsForTaste(Abigail, %v) mismatch (-want +got):\n%s", tt.taste, diff)
		}
	}
	if got := db.GiftsForTaste("Nobody", Love); got != nil {
		t.Fatalf("unknown character should have no gifts, got %v", got)
	}
}
