//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
	"encoding/json"
)

// RemoteStore is the path addressed document store shared by every client.
type RemoteStore interface {
	Get(ctx context.Context, path string) (Document, error)
	List(ctx context.Context, collectionPath string) ([]Document, error)
	Set(ctx context.Context, path string, data json.RawMessage) error
	Patch(ctx context.Context, path string, patch Patch) error
	Delete(ctx context.Context, path string) error

	// Subscribe sends the current snapshot of path, then one snapshot per change, until ctx is
	// done (returns nil) or the listener fails (returns the error).
	Subscribe(ctx context.Context, path string, snapshots chan<- Snapshot) error
}

type Subscription interface {
	Path() string
	Cancel()
}

type SyncEngine interface {
	Subscribe(ctx context.Context, path string, onSnapshot func(View), onError func(error)) (Subscription, error)
	Cached(path string) (View, bool)
	GetMetrics() map[string]int64
}

type MutationGateway interface {
	Write(ctx context.Context, path string, patch Patch) error
	WriteOptimistic(ctx context.Context, path string, patch Patch, apply func(), revert func()) error
	Set(ctx context.Context, path string, value any) error
	Add(ctx context.Context, collectionPath string, value any) (string, error)
	Delete(ctx context.Context, path string) error
	FieldState(path, field string) FieldState
}

// LocalStore is the local state container as seen by services that write optimistically.
type LocalStore interface {
	Put(entity Entity)
	Lookup(path string) (Entity, bool)
}

type CampaignService interface {
	Create(ctx context.Context, name, gmID string) (Campaign, error)
	Get(ctx context.Context, campaignID string) (Campaign, error)
	UpdateSupply(ctx context.Context, campaignID string, supply int) error
	AddGM(ctx context.Context, campaignID, gmID string) error
	UpdateSettings(ctx context.Context, campaignID string, settings CampaignSettings) error
	Delete(ctx context.Context, campaignID string) (DeletionReport, error)
}

type CharacterService interface {
	Create(ctx context.Context, character Character) (Character, error)
	Get(ctx context.Context, characterID string) (Character, error)
	UpdateStat(ctx context.Context, characterID string, stat Stat, value int) error
	UpdateMeter(ctx context.Context, characterID string, meter Meter, value int) error
	JoinCampaign(ctx context.Context, characterID, campaignID string) error
	LeaveCampaign(ctx context.Context, characterID string) error
	Delete(ctx context.Context, characterID string) (DeletionReport, error)

	AddAsset(ctx context.Context, characterID string, asset Asset) (string, error)
	RemoveAsset(ctx context.Context, characterID, assetID string) error
	UpdateAssetInput(ctx context.Context, characterID, assetID, label, value string) error
	UpdateAssetCheckbox(ctx context.Context, characterID, assetID string, abilityIndex int, checked bool) error
	UpdateAssetTrack(ctx context.Context, characterID, assetID string, value int) error
	UpdateCustomAsset(ctx context.Context, characterID, assetID string, customAsset map[string]any) error
}

type GameLogService interface {
	Log(ctx context.Context, campaignID, characterID string, roll Roll) (string, error)
	List(ctx context.Context, collectionPath string) ([]GameLogEntry, error)
}

type TrackService interface {
	Create(ctx context.Context, collectionPath string, track ProgressTrack) (string, error)
	Mark(ctx context.Context, path string, track ProgressTrack) (ProgressTrack, TrackChange, error)
	Clear(ctx context.Context, path string, track ProgressTrack) (ProgressTrack, TrackChange, error)
	Complete(ctx context.Context, path string) error
	Delete(ctx context.Context, path string) error
	RollProgress(ctx context.Context, request ProgressRollRequest) (Roll, error)
}

type WorldService interface {
	UpsertLocation(ctx context.Context, worldID, locationID string, location Location) (string, error)
	UpdatePrivateDetails(ctx context.Context, worldID, locationID string, details LocationPrivateDetails) error
	UpdatePublicNotes(ctx context.Context, worldID, locationID string, notes LocationPublicNotes) error
	DeleteLocation(ctx context.Context, worldID, locationID string) error
}
