package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

var tracer = otel.Tracer("state")

// Watcher binds one campaign and its member characters to a Store.
type Watcher struct {
	engine  core.SyncEngine
	gateway core.MutationGateway
	store   *Store

	mu         sync.Mutex
	ctx        context.Context
	campaignID string
	closed     bool
	subs       []core.Subscription
	members    map[string][]core.Subscription
}

func NewWatcher(engine core.SyncEngine, gateway core.MutationGateway, store *Store) *Watcher {
	return &Watcher{
		engine:  engine,
		gateway: gateway,
		store:   store,
		members: make(map[string][]core.Subscription),
	}
}

// WatchCampaign subscribes to the campaign, its settings, notes and tracks, and to every member
// character with its assets. Members joining or leaving are picked up from campaign snapshots.
// Everything stops on Close or when ctx is done.
func (w *Watcher) WatchCampaign(ctx context.Context, campaignID string) error {
	ctx, span := tracer.Start(ctx, "State.Watcher.WatchCampaign")
	defer span.End()

	if campaignID == "" {
		return core.NewErrorValidation("campaign id is required")
	}
	span.SetAttributes(attribute.String("campaign", campaignID))

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return core.NewErrorValidation("watcher is closed")
	}
	if w.campaignID != "" {
		return core.NewErrorValidation(fmt.Sprintf("already watching campaign %s", w.campaignID))
	}
	w.ctx = ctx
	w.campaignID = campaignID

	paths := []string{
		core.CampaignSettingsCollectionPath(campaignID),
		core.CampaignNotesPath(campaignID),
		core.CampaignTracksPath(campaignID),
	}
	for _, path := range paths {
		sub, err := w.engine.Subscribe(ctx, path, w.store.Apply, w.onError(path))
		if err != nil {
			span.RecordError(err)
			w.abortLocked()
			return err
		}
		w.subs = append(w.subs, sub)
	}

	campaignPath := core.CampaignPath(campaignID)
	sub, err := w.engine.Subscribe(ctx, campaignPath, w.onCampaign, w.onError(campaignPath))
	if err != nil {
		span.RecordError(err)
		w.abortLocked()
		return err
	}
	w.subs = append(w.subs, sub)

	return nil
}

func (w *Watcher) onError(path string) func(error) {
	return func(err error) {
		slog.Warn(
			fmt.Sprintf("listener on %s failed: %v", path, err),
			slog.String("module", "state"),
		)
		w.store.SetError(path, err)
	}
}

func (w *Watcher) onCampaign(view core.View) {
	w.store.Apply(view)

	wanted := map[string]struct{}{}
	for _, entity := range view.Entities {
		if campaign, ok := entity.Value.(core.Campaign); ok {
			for _, characterID := range campaign.CharacterIDs() {
				wanted[characterID] = struct{}{}
			}
		}
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}

	var removed []core.Subscription
	for characterID, subs := range w.members {
		if _, ok := wanted[characterID]; !ok {
			removed = append(removed, subs...)
			delete(w.members, characterID)
		}
	}
	for characterID := range wanted {
		if _, ok := w.members[characterID]; ok {
			continue
		}
		w.members[characterID] = w.watchCharacter(characterID)
	}
	w.mu.Unlock()

	for _, sub := range removed {
		sub.Cancel()
	}
}

// watchCharacter must be called with w.mu held.
func (w *Watcher) watchCharacter(characterID string) []core.Subscription {
	var subs []core.Subscription
	for _, path := range []string{core.CharacterPath(characterID), core.CharacterAssetsPath(characterID)} {
		sub, err := w.engine.Subscribe(w.ctx, path, w.store.Apply, w.onError(path))
		if err != nil {
			w.store.SetError(path, err)
			continue
		}
		subs = append(subs, sub)
	}
	return subs
}

// Members returns the ids of the characters currently watched.
func (w *Watcher) Members() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := make([]string, 0, len(w.members))
	for characterID := range w.members {
		ids = append(ids, characterID)
	}
	return ids
}

// ReorderNote moves a note optimistically: the store shows the new order at once and goes back
// to the old one when the write fails.
func (w *Watcher) ReorderNote(ctx context.Context, notePath string, order int) error {
	ctx, span := tracer.Start(ctx, "State.Watcher.ReorderNote")
	defer span.End()

	info, err := core.ParsePath(notePath)
	if err != nil {
		return err
	}
	if info.Collection || (info.Kind != core.KindCampaignNote && info.Kind != core.KindCharacterNote) {
		return core.NewErrorValidation("not a note: " + notePath)
	}
	if _, ok := w.store.Lookup(info.Path); !ok {
		return core.NewErrorNotFound()
	}

	var (
		previous core.Note
		moved    bool
	)
	err = w.gateway.WriteOptimistic(
		ctx,
		info.Path,
		core.SetField("order", order),
		func() { previous, moved = w.store.reorderNote(info.Path, order) },
		func() {
			// a note that vanished before the move has nothing to go back to
			if moved {
				w.store.Put(core.Entity{Path: info.Path, ID: info.ID(), Kind: info.Kind, Value: previous})
			}
		},
	)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// abortLocked undoes a partially started WatchCampaign. Only store reducers are attached at
// that point, so cancelling under w.mu is safe.
func (w *Watcher) abortLocked() {
	for _, sub := range w.detachLocked() {
		sub.Cancel()
	}
	w.campaignID = ""
	w.ctx = nil
}

func (w *Watcher) detachLocked() []core.Subscription {
	subs := w.subs
	for _, memberSubs := range w.members {
		subs = append(subs, memberSubs...)
	}
	w.subs = nil
	w.members = make(map[string][]core.Subscription)
	return subs
}

// Close cancels every subscription. It is idempotent.
func (w *Watcher) Close() {
	w.mu.Lock()
	w.closed = true
	subs := w.detachLocked()
	w.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}
