package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/ironfellow/companion/core"
)

type watcher struct {
	path   string
	notify chan struct{}
}

// MemoryStore is a Service kept in process memory.
// Listeners are notified of every change; changes that arrive while a listener is still
// sending are coalesced into the next snapshot.
type MemoryStore struct {
	mu       sync.RWMutex
	docs     map[string]core.Document
	watchers map[*watcher]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:     make(map[string]core.Document),
		watchers: make(map[*watcher]struct{}),
	}
}

func documentPath(path string) (core.PathInfo, error) {
	info, err := core.ParsePath(path)
	if err != nil {
		return core.PathInfo{}, err
	}
	if info.Collection {
		return core.PathInfo{}, core.NewErrorValidation("not a document path: " + path)
	}
	return info, nil
}

func collectionPath(path string) (core.PathInfo, error) {
	info, err := core.ParsePath(path)
	if err != nil {
		return core.PathInfo{}, err
	}
	if !info.Collection {
		return core.PathInfo{}, core.NewErrorValidation("not a collection path: " + path)
	}
	return info, nil
}

func validateObject(data json.RawMessage) error {
	var object map[string]any
	if err := json.Unmarshal(data, &object); err != nil || object == nil {
		return core.NewErrorValidation("document must be a JSON object")
	}
	return nil
}

// Get implements core.RemoteStore
func (m *MemoryStore) Get(ctx context.Context, path string) (core.Document, error) {
	info, err := documentPath(path)
	if err != nil {
		return core.Document{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[info.Path]
	if !ok {
		return core.Document{}, core.NewErrorNotFound()
	}
	return doc, nil
}

// List implements core.RemoteStore
func (m *MemoryStore) List(ctx context.Context, path string) ([]core.Document, error) {
	info, err := collectionPath(path)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.list(info.Path), nil
}

func (m *MemoryStore) list(collection string) []core.Document {
	docs := make([]core.Document, 0)
	for docPath, doc := range m.docs {
		if core.ParentPath(docPath) == collection {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

// Set implements core.RemoteStore
func (m *MemoryStore) Set(ctx context.Context, path string, data json.RawMessage) error {
	info, err := documentPath(path)
	if err != nil {
		return err
	}
	if err := validateObject(data); err != nil {
		return err
	}

	m.mu.Lock()
	now := time.Now()
	doc, ok := m.docs[info.Path]
	if !ok {
		doc = core.Document{Path: info.Path, CDate: now}
	}
	doc.Data = append(json.RawMessage(nil), data...)
	doc.MDate = now
	m.docs[info.Path] = doc
	m.mu.Unlock()

	m.notify(info.Path)
	return nil
}

// Patch implements core.RemoteStore. Patching a missing document fails with ErrorNotFound.
func (m *MemoryStore) Patch(ctx context.Context, path string, patch core.Patch) error {
	info, err := documentPath(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	doc, ok := m.docs[info.Path]
	if !ok {
		m.mu.Unlock()
		return core.NewErrorNotFound()
	}
	data, err := core.ApplyPatch(doc.Data, patch)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	doc.Data = data
	doc.MDate = time.Now()
	m.docs[info.Path] = doc
	m.mu.Unlock()

	m.notify(info.Path)
	return nil
}

// Delete implements core.RemoteStore. Deleting a missing document succeeds.
func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	info, err := documentPath(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	_, existed := m.docs[info.Path]
	delete(m.docs, info.Path)
	m.mu.Unlock()

	if existed {
		m.notify(info.Path)
	}
	return nil
}

// Subscribe implements core.RemoteStore
func (m *MemoryStore) Subscribe(ctx context.Context, path string, snapshots chan<- core.Snapshot) error {
	info, err := core.ParsePath(path)
	if err != nil {
		return err
	}

	w := &watcher{path: info.Path, notify: make(chan struct{}, 1)}
	w.notify <- struct{}{}

	m.mu.Lock()
	m.watchers[w] = struct{}{}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.watchers, w)
		m.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.notify:
			snapshot := m.Snapshot(info)
			select {
			case <-ctx.Done():
				return nil
			case snapshots <- snapshot:
			}
		}
	}
}

// Snapshot returns the current state of a document or collection path.
func (m *MemoryStore) Snapshot(info core.PathInfo) core.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if info.Collection {
		return core.Snapshot{Path: info.Path, Exists: true, Documents: m.list(info.Path)}
	}
	doc, ok := m.docs[info.Path]
	if !ok {
		return core.Snapshot{Path: info.Path, Exists: false, Documents: []core.Document{}}
	}
	return core.Snapshot{Path: info.Path, Exists: true, Documents: []core.Document{doc}}
}

func (m *MemoryStore) notify(docPath string) {
	parent := core.ParentPath(docPath)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for w := range m.watchers {
		if w.path != docPath && w.path != parent {
			continue
		}
		select {
		case w.notify <- struct{}{}:
		default:
		}
	}
}

// Count returns the number of stored documents.
func (m *MemoryStore) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.docs)), nil
}

func (m *MemoryStore) GetMetrics() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]int64{
		"documents": int64(len(m.docs)),
		"listeners": int64(len(m.watchers)),
	}
}
