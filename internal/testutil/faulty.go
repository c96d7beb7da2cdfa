package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ironfellow/companion/core"
)

// FaultyStore wraps a core.RemoteStore and fails selected operations.
type FaultyStore struct {
	core.RemoteStore

	mu       sync.Mutex
	failures map[string][]error
	calls    []string
}

func NewFaultyStore(store core.RemoteStore) *FaultyStore {
	return &FaultyStore{
		RemoteStore: store,
		failures:    make(map[string][]error),
	}
}

// FailNext makes the next calls of op ("get", "list", "set", "patch", "delete") on path
// return errs in order.
func (f *FaultyStore) FailNext(op, path string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := op + " " + path
	f.failures[key] = append(f.failures[key], errs...)
}

// Calls returns every operation seen so far as "op path".
func (f *FaultyStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FaultyStore) intercept(op, path string) error {
	cleaned, err := core.CleanPath(path)
	if err != nil {
		cleaned = path
	}
	key := op + " " + cleaned

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, key)
	errs := f.failures[key]
	if len(errs) == 0 {
		return nil
	}
	f.failures[key] = errs[1:]
	return errs[0]
}

func (f *FaultyStore) Get(ctx context.Context, path string) (core.Document, error) {
	if err := f.intercept("get", path); err != nil {
		return core.Document{}, err
	}
	return f.RemoteStore.Get(ctx, path)
}

func (f *FaultyStore) List(ctx context.Context, path string) ([]core.Document, error) {
	if err := f.intercept("list", path); err != nil {
		return nil, err
	}
	return f.RemoteStore.List(ctx, path)
}

func (f *FaultyStore) Set(ctx context.Context, path string, data json.RawMessage) error {
	if err := f.intercept("set", path); err != nil {
		return err
	}
	return f.RemoteStore.Set(ctx, path, data)
}

func (f *FaultyStore) Patch(ctx context.Context, path string, patch core.Patch) error {
	if err := f.intercept("patch", path); err != nil {
		return err
	}
	return f.RemoteStore.Patch(ctx, path, patch)
}

func (f *FaultyStore) Delete(ctx context.Context, path string) error {
	if err := f.intercept("delete", path); err != nil {
		return err
	}
	return f.RemoteStore.Delete(ctx, path)
}
