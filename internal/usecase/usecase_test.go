package usecase_test

import (
	"context"
	"time"

	"github.com/runoshun/duelist/internal/taskstore"
	"github.com/runoshun/duelist/internal/testutil"
)

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// newStore returns an empty store backed by an in-memory key-value store.
func newStore() (*taskstore.Store, *testutil.MemoryKV) {
	kv := testutil.NewMemoryKV()
	store := taskstore.New(kv, &testutil.SequenceIDs{}, &testutil.RecordingNotifier{}, testutil.DiscardLogger())
	store.Load(context.Background())
	return store, kv
}

func clock() *testutil.MockClock {
	return &testutil.MockClock{NowTime: testNow}
}
