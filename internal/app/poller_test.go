package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bsj5/profilecard/internal/activity"
	"github.com/bsj5/profilecard/internal/lanyard"
	"github.com/bsj5/profilecard/internal/reconcile"
	"github.com/bsj5/profilecard/internal/state"
)

type fetchResult struct {
	doc lanyard.Document
	err error
}

// fakeFetcher replays results in order and repeats the last one.
type fakeFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
	called  chan struct{}
}

func (f *fakeFetcher) FetchPresence(_ context.Context, _ string) (*lanyard.Document, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	res := f.results[i]
	f.mu.Unlock()

	if f.called != nil {
		select {
		case f.called <- struct{}{}:
		default:
		}
	}
	if res.err != nil {
		return nil, res.err
	}
	doc := res.doc
	return &doc, nil
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func listening(song string) lanyard.Document {
	return lanyard.Document{
		Success: true,
		Data: lanyard.Presence{
			DiscordStatus: lanyard.StatusOnline,
			Activities: []lanyard.Activity{{
				Kind:    lanyard.KindSpotify,
				Name:    "Spotify",
				Details: song,
				State:   "Artist",
				SyncID:  "track-" + song,
			}},
		},
	}
}

func idle() lanyard.Document {
	return lanyard.Document{
		Success: true,
		Data:    lanyard.Presence{DiscordStatus: lanyard.StatusIdle},
	}
}

func TestPoller_TickNotifiesOnlyOnChange(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{
		{doc: listening("a")},
		{doc: listening("a")},
		{doc: listening("b")},
	}}
	var notified []lanyard.Document
	p := NewPoller(fetcher, "42", nil, time.Second, nil, func(doc lanyard.Document) {
		notified = append(notified, doc)
	})

	want := []TickResult{TickChanged, TickUnchanged, TickChanged}
	for i, w := range want {
		if got := p.Tick(context.Background()); got != w {
			t.Fatalf("tick %d = %v, want %v", i, got, w)
		}
	}
	if len(notified) != 2 {
		t.Fatalf("notified %d times, want 2", len(notified))
	}
	if notified[1].Data.Activities[0].Details != "b" {
		t.Fatalf("second notification = %+v, want track b", notified[1])
	}
}

func TestPoller_FailureKeepsLastDocument(t *testing.T) {
	errDown := errors.New("connection refused")
	fetcher := &fakeFetcher{results: []fetchResult{
		{doc: listening("a")},
		{err: errDown},
		{err: errDown},
		{doc: listening("a")},
	}}
	store := &state.Store{}
	notified := 0
	p := NewPoller(fetcher, "42", store, time.Second, nil, func(lanyard.Document) { notified++ })

	ctx := context.Background()
	p.Tick(ctx)
	if got := p.Tick(ctx); got != TickFailed {
		t.Fatalf("tick = %v, want failed", got)
	}
	p.Tick(ctx)

	snap := store.Snapshot()
	if !snap.HasDocument || snap.Document.Data.Activities[0].Details != "a" {
		t.Fatalf("snapshot lost the last document: %+v", snap)
	}
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("failures = %d, offline = %v, want 2 and offline", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if !errors.Is(snap.LastError, errDown) {
		t.Fatalf("LastError = %v, want %v", snap.LastError, errDown)
	}

	// Recovering with the same document is not a change.
	if got := p.Tick(ctx); got != TickUnchanged {
		t.Fatalf("recovery tick = %v, want unchanged", got)
	}
	if notified != 1 {
		t.Fatalf("notified %d times, want 1", notified)
	}
	if snap := store.Snapshot(); snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("snapshot after recovery = %+v, want failures cleared", snap)
	}
}

func TestPoller_CancelledFetchIsNotRecorded(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{{err: context.Canceled}}}
	store := &state.Store{}
	p := NewPoller(fetcher, "42", store, time.Second, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := p.Tick(ctx); got != TickFailed {
		t.Fatalf("tick = %v, want failed", got)
	}
	if snap := store.Snapshot(); snap.Polls != 0 {
		t.Fatalf("polls = %d, want 0 after a cancelled fetch", snap.Polls)
	}
}

func TestPoller_RefreshIsRateLimited(t *testing.T) {
	p := NewPoller(&fakeFetcher{results: []fetchResult{{doc: idle()}}}, "42", nil, time.Second, nil, nil)
	if !p.Refresh() {
		t.Fatalf("first refresh was throttled")
	}
	if p.Refresh() {
		t.Fatalf("second refresh within a second was accepted")
	}
}

func TestPoller_RunPollsImmediatelyAndOnRefresh(t *testing.T) {
	fetcher := &fakeFetcher{
		results: []fetchResult{{doc: idle()}},
		called:  make(chan struct{}, 1),
	}
	p := NewPoller(fetcher, "42", nil, time.Hour, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	waitCall := func(what string) {
		t.Helper()
		select {
		case <-fetcher.called:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", what)
		}
	}
	waitCall("initial poll")

	if !p.Refresh() {
		t.Fatalf("refresh was throttled")
	}
	waitCall("refresh poll")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
	if got := fetcher.count(); got != 2 {
		t.Fatalf("fetch calls = %d, want 2", got)
	}
}

func TestPoller_DrivesActivityPanel(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{
		{doc: listening("a")},
		{doc: listening("a")},
		{doc: idle()},
		{err: errors.New("timeout")},
		{doc: listening("a")},
	}}
	panel := activity.NewPanel(reconcile.DefaultTiming())
	now := time.Unix(1_700_000_000, 0)
	var ops []reconcile.Op
	p := NewPoller(fetcher, "42", nil, time.Second, nil, func(doc lanyard.Document) {
		ops = panel.Apply(doc, now)
	})

	step := func() {
		ops = nil
		p.Tick(context.Background())
		now = now.Add(5 * time.Second)
		panel.Advance(now)
	}

	step()
	if len(ops) != 1 || ops[0].Kind != reconcile.OpAdd || len(panel.Elements()) != 1 {
		t.Fatalf("first poll ops = %v, elements = %d, want one add", ops, len(panel.Elements()))
	}

	step()
	if ops != nil {
		t.Fatalf("unchanged poll reconciled: %v", ops)
	}

	step()
	if len(ops) != 1 || ops[0].Kind != reconcile.OpRemove || len(panel.Elements()) != 0 {
		t.Fatalf("idle poll ops = %v, elements = %d, want one remove", ops, len(panel.Elements()))
	}

	step()
	if ops != nil || len(panel.Elements()) != 0 {
		t.Fatalf("failed poll touched the panel: ops = %v", ops)
	}

	step()
	card, ok := panel.Current()
	if len(ops) != 1 || ops[0].Kind != reconcile.OpAdd || !ok || card.Title != "a" {
		t.Fatalf("re-listen ops = %v, current = %+v, want a fresh add", ops, card)
	}
}
