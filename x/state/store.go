// Package state is the local state container fed by the sync engine.
//
// Each slice (characters, campaigns, settings, notes, tracks, assets) is changed only through
// its reducer. Reducers receive normalized views, never raw store payloads.
package state

import (
	"sort"
	"sync"

	"github.com/ironfellow/companion/core"
)

type reducer func(s *Store, view core.View)

var reducers = map[core.Kind]reducer{
	core.KindCharacter:        (*Store).reduceCharacters,
	core.KindCampaign:         (*Store).reduceCampaigns,
	core.KindCampaignSettings: (*Store).reduceSettings,
	core.KindCampaignNote:     (*Store).reduceNotes,
	core.KindCharacterNote:    (*Store).reduceNotes,
	core.KindCampaignTrack:    (*Store).reduceTracks,
	core.KindCharacterTrack:   (*Store).reduceTracks,
	core.KindCharacterAsset:   (*Store).reduceAssets,
}

// Store implements core.LocalStore.
type Store struct {
	mu sync.RWMutex

	characters map[string]core.Character
	campaigns  map[string]core.Campaign
	settings   map[string]core.CampaignSettings
	notes      map[string]core.Note
	tracks     map[string]core.ProgressTrack
	assets     map[string]core.Asset

	errs    map[string]error
	version uint64
}

func NewStore() *Store {
	return &Store{
		characters: make(map[string]core.Character),
		campaigns:  make(map[string]core.Campaign),
		settings:   make(map[string]core.CampaignSettings),
		notes:      make(map[string]core.Note),
		tracks:     make(map[string]core.ProgressTrack),
		assets:     make(map[string]core.Asset),
		errs:       make(map[string]error),
	}
}

// replace makes entries under view.Path match the view exactly.
func replace[T any](entries map[string]T, view core.View) {
	if view.Collection {
		for path := range entries {
			if core.ParentPath(path) == view.Path {
				delete(entries, path)
			}
		}
	} else {
		delete(entries, view.Path)
	}

	for _, entity := range view.Entities {
		if value, ok := entity.Value.(T); ok {
			entries[entity.Path] = value
		}
	}
}

func (s *Store) reduceCharacters(view core.View) { replace(s.characters, view) }
func (s *Store) reduceCampaigns(view core.View)  { replace(s.campaigns, view) }
func (s *Store) reduceSettings(view core.View)   { replace(s.settings, view) }
func (s *Store) reduceNotes(view core.View)      { replace(s.notes, view) }
func (s *Store) reduceTracks(view core.View)     { replace(s.tracks, view) }
func (s *Store) reduceAssets(view core.View)     { replace(s.assets, view) }

// Apply reduces a snapshot view into the slice owning its kind. Views of kinds without a
// slice are ignored.
func (s *Store) Apply(view core.View) {
	reduce, ok := reducers[view.Kind]
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reduce(s, view)
	delete(s.errs, view.Path)
	s.version++
}

// Put implements core.LocalStore
func (s *Store) Put(entity core.Entity) {
	s.Apply(core.View{
		Path:     entity.Path,
		Kind:     entity.Kind,
		Exists:   true,
		Entities: []core.Entity{entity},
	})
}

// Lookup implements core.LocalStore
func (s *Store) Lookup(path string) (core.Entity, bool) {
	info, err := core.ParsePath(path)
	if err != nil || info.Collection {
		return core.Entity{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		value any
		ok    bool
	)
	switch info.Kind {
	case core.KindCharacter:
		value, ok = lookup(s.characters, info.Path)
	case core.KindCampaign:
		value, ok = lookup(s.campaigns, info.Path)
	case core.KindCampaignSettings:
		value, ok = lookup(s.settings, info.Path)
	case core.KindCampaignNote, core.KindCharacterNote:
		value, ok = lookup(s.notes, info.Path)
	case core.KindCampaignTrack, core.KindCharacterTrack:
		value, ok = lookup(s.tracks, info.Path)
	case core.KindCharacterAsset:
		value, ok = lookup(s.assets, info.Path)
	}
	if !ok {
		return core.Entity{}, false
	}

	return core.Entity{Path: info.Path, ID: info.ID(), Kind: info.Kind, Value: value}, true
}

func lookup[T any](entries map[string]T, path string) (any, bool) {
	value, ok := entries[path]
	return value, ok
}

// SetError records the failure of the listener on path. The next view of path clears it.
func (s *Store) SetError(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[path] = err
	s.version++
}

func (s *Store) Err(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs[path]
}

// Version increases with every change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Character(characterID string) (core.Character, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	character, ok := s.characters[core.CharacterPath(characterID)]
	return character, ok
}

func (s *Store) Campaign(campaignID string) (core.Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campaign, ok := s.campaigns[core.CampaignPath(campaignID)]
	return campaign, ok
}

func (s *Store) Settings(campaignID string) (core.CampaignSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings, ok := s.settings[core.CampaignSettingsPath(campaignID, core.DefaultSettingsDoc)]
	return settings, ok
}

func children[T any](entries map[string]T, collection string) []T {
	values := make([]T, 0)
	for path, value := range entries {
		if core.ParentPath(path) == collection {
			values = append(values, value)
		}
	}
	return values
}

// Notes returns the notes of a collection in display order.
func (s *Store) Notes(collectionPath string) []core.Note {
	s.mu.RLock()
	notes := children(s.notes, collectionPath)
	s.mu.RUnlock()

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Order == notes[j].Order {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].Order < notes[j].Order
	})
	return notes
}

func (s *Store) Tracks(collectionPath string) []core.ProgressTrack {
	s.mu.RLock()
	tracks := children(s.tracks, collectionPath)
	s.mu.RUnlock()

	sort.Slice(tracks, func(i, j int) bool { return tracks[i].ID < tracks[j].ID })
	return tracks
}

// Assets returns the assets of a character in sheet order.
func (s *Store) Assets(characterID string) []core.Asset {
	s.mu.RLock()
	assets := children(s.assets, core.CharacterAssetsPath(characterID))
	s.mu.RUnlock()

	sort.Slice(assets, func(i, j int) bool {
		if assets[i].Order == assets[j].Order {
			return assets[i].ID < assets[j].ID
		}
		return assets[i].Order < assets[j].Order
	})
	return assets
}

// reorderNote moves a note locally and returns the note as it was before.
func (s *Store) reorderNote(path string, order int) (core.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[path]
	if !ok {
		return core.Note{}, false
	}
	moved := note
	moved.Order = order
	s.notes[path] = moved
	s.version++
	return note, true
}

// Reset drops every slice.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.characters)
	clear(s.campaigns)
	clear(s.settings)
	clear(s.notes)
	clear(s.tracks)
	clear(s.assets)
	clear(s.errs)
	s.version++
}
