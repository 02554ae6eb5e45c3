package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"codehub.local/internal/app/account"
)

type fakeStore struct {
	entries []Entry
	err     error
}

func (f *fakeStore) Upsert(_ context.Context, e Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

type fakeLinks struct {
	links []account.SharedLink
	err   error
}

func (f *fakeLinks) ListByUser(context.Context, int64) ([]account.SharedLink, error) {
	return f.links, f.err
}

type fakeEmitter struct {
	events []Event
}

func (f *fakeEmitter) Emit(e Event) { f.events = append(f.events, e) }
func (f *fakeEmitter) Close()       {}

func sampleAccount() account.Account {
	last := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return account.Account{
		ID:             1,
		Username:       "alice_01",
		Email:          "alice@x.com",
		CreatedAt:      time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
		LastLogin:      &last,
		GenerateCounts: account.Counts{"py": 3},
		RefactorCounts: account.Counts{},
		RunCounts:      account.Counts{"go": 1},
	}
}

func TestRecordUpsertsSnapshot(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	links := &fakeLinks{links: []account.SharedLink{{ShareID: "s1", Title: "demo"}}}
	emitter := &fakeEmitter{}
	m := New(store, links, emitter)

	acc := sampleAccount()
	m.Record(context.Background(), acc, ActionUpdate)

	if len(store.entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(store.entries))
	}
	e := store.entries[0]
	if e.Username != "alice_01" || e.Email != "alice@x.com" || e.Action != ActionUpdate {
		t.Fatalf("entry identity/action mismatch: %+v", e)
	}
	if len(e.SharedLinks) != 1 || e.SharedLinks[0].ShareID != "s1" {
		t.Fatalf("entry links mismatch: %+v", e.SharedLinks)
	}
	if e.GenerateCounts["py"] != 3 {
		t.Fatalf("entry counts mismatch: %+v", e.GenerateCounts)
	}

	// 快照是按值拷贝的，改原账户不影响已记录的条目
	acc.GenerateCounts["py"] = 99
	if store.entries[0].GenerateCounts["py"] != 3 {
		t.Fatal("snapshot shares counter map with the account")
	}

	if len(emitter.events) != 1 || emitter.events[0].Action != ActionUpdate {
		t.Fatalf("emitter events: %+v", emitter.events)
	}
}

func TestRecordSwallowsFailures(t *testing.T) {
	t.Parallel()

	// store 报错、links 报错都不能 panic 或向上传播
	m := New(
		&fakeStore{err: errors.New("db down")},
		&fakeLinks{err: errors.New("db down")},
		nil,
	)
	m.Record(context.Background(), sampleAccount(), ActionDelete)
}
