package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"finsight/pkg/core/profile"
	"finsight/pkg/core/report"
	"finsight/pkg/core/store"
)

type failingKV struct {
	getErr error
	putErr error
}

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, f.getErr
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	return f.putErr
}

func (f *failingKV) Close() error { return nil }

func sampleReport(period string) *report.FinancialReport {
	return &report.FinancialReport{
		Kind:           report.Structured,
		ReportType:     report.DefaultReportType,
		AnalysisPeriod: period,
	}
}

func TestRecordCapsAtTwentyNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, store.NewMemory())
	p := &profile.FinancialProfile{Salary: 50000}

	for i := 0; i < 27; i++ {
		s.Record(ctx, sampleReport(fmt.Sprintf("month-%d", i)), p)
	}

	entries := s.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(entries), MaxEntries)
	}
	// Newest first, no gaps, no duplicates.
	for i, e := range entries {
		want := fmt.Sprintf("month-%d", 26-i)
		if e.Report.AnalysisPeriod != want {
			t.Fatalf("entries[%d].AnalysisPeriod = %q, want %q", i, e.Report.AnalysisPeriod, want)
		}
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.ID] {
			t.Fatalf("duplicate entry id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestRecordSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	s := NewStore(ctx, kv)
	s.Record(ctx, sampleReport("March"), &profile.FinancialProfile{Salary: 75000})

	reloaded := NewStore(ctx, kv)
	entries := reloaded.Entries()
	if len(entries) != 1 {
		t.Fatalf("reloaded len = %d, want 1", len(entries))
	}
	if entries[0].Report.AnalysisPeriod != "March" || entries[0].Profile.Salary != 75000 {
		t.Fatalf("reloaded entry = %+v", entries[0])
	}
}

func TestCorruptStorageLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	if err := kv.Put(ctx, store.KeyHistory, []byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := NewStore(ctx, kv)
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0 for corrupt record", s.Len())
	}
}

func TestPersistenceFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{
		getErr: errors.New("storage unavailable"),
		putErr: errors.New("quota exceeded"),
	}

	s := NewStore(ctx, kv)
	s.Record(ctx, sampleReport("April"), &profile.FinancialProfile{Salary: 1})

	// Live memory stays correct even though durability failed.
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestRecordSnapshotsProfile(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, store.NewMemory())
	p := &profile.FinancialProfile{
		Salary: 50000,
		Cards:  []profile.CreditCard{{Name: "Visa", Limit: 10000}},
	}

	s.Record(ctx, sampleReport("May"), p)
	p.Cards[0].Name = "Amex"

	if got := s.Entries()[0].Profile.Cards[0].Name; got != "Visa" {
		t.Fatalf("history entry aliases the live profile: %q", got)
	}
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, store.NewMemory())
	entry := s.Record(ctx, sampleReport("June"), &profile.FinancialProfile{Salary: 2})

	got, ok := s.Find(entry.ID)
	if !ok || got.Report.AnalysisPeriod != "June" {
		t.Fatalf("Find(%q) = %+v, %v", entry.ID, got, ok)
	}
	if _, ok := s.Find("missing"); ok {
		t.Fatal("Find returned an entry for an unknown id")
	}
}
