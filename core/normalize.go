package core

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Entity is a normalized document: wire timestamps already converted to time.Time.
type Entity struct {
	Path  string
	ID    string
	Kind  Kind
	Value any
}

// View is a normalized snapshot, the only form local state ever receives.
type View struct {
	Path       string
	Kind       Kind
	Collection bool
	Exists     bool
	Entities   []Entity
}

func decodeInto[T any](doc Document, target *T) error {
	if err := json.Unmarshal(doc.Data, target); err != nil {
		return errors.Wrapf(err, "failed to decode %s", doc.Path)
	}
	return nil
}

// NormalizeDocument decodes a stored document into its local type.
// Documents of an unknown kind decode into map[string]any with timestamps converted.
func NormalizeDocument(doc Document) (Entity, error) {
	info, err := ParsePath(doc.Path)
	if err != nil {
		return Entity{}, err
	}

	entity := Entity{
		Path: info.Path,
		ID:   info.ID(),
		Kind: info.Kind,
	}

	switch info.Kind {
	case KindCampaign:
		var stored StoredCampaign
		if err := decodeInto(doc, &stored); err != nil {
			return Entity{}, err
		}
		campaign := CampaignFromStored(stored)
		campaign.ID = entity.ID
		entity.Value = campaign
	case KindCampaignSettings:
		var settings CampaignSettings
		if err := decodeInto(doc, &settings); err != nil {
			return Entity{}, err
		}
		settings.ID = entity.ID
		entity.Value = settings
	case KindCampaignNote, KindCharacterNote:
		var note Note
		if err := decodeInto(doc, &note); err != nil {
			return Entity{}, err
		}
		note.ID = entity.ID
		entity.Value = note
	case KindCampaignLog, KindCharacterLog:
		var stored StoredRoll
		if err := decodeInto(doc, &stored); err != nil {
			return Entity{}, err
		}
		entity.Value = GameLogEntry{ID: entity.ID, Roll: RollFromStored(stored)}
	case KindCampaignTrack, KindCharacterTrack:
		var track ProgressTrack
		if err := decodeInto(doc, &track); err != nil {
			return Entity{}, err
		}
		track.ID = entity.ID
		entity.Value = track
	case KindCharacter:
		var character Character
		if err := decodeInto(doc, &character); err != nil {
			return Entity{}, err
		}
		character.ID = entity.ID
		entity.Value = character
	case KindCharacterAsset:
		var asset Asset
		if err := decodeInto(doc, &asset); err != nil {
			return Entity{}, err
		}
		asset.ID = entity.ID
		entity.Value = asset
	case KindLocation:
		var stored StoredLocation
		if err := decodeInto(doc, &stored); err != nil {
			return Entity{}, err
		}
		location := LocationFromStored(stored)
		location.ID = entity.ID
		entity.Value = location
	case KindLocationPrivate:
		var details LocationPrivateDetails
		if err := decodeInto(doc, &details); err != nil {
			return Entity{}, err
		}
		entity.Value = details
	case KindLocationPublic:
		var notes LocationPublicNotes
		if err := decodeInto(doc, &notes); err != nil {
			return Entity{}, err
		}
		entity.Value = notes
	default:
		decoder := json.NewDecoder(bytes.NewReader(doc.Data))
		decoder.UseNumber()
		var raw any
		if err := decoder.Decode(&raw); err != nil {
			return Entity{}, errors.Wrapf(err, "failed to decode %s", doc.Path)
		}
		entity.Value = convertTimestamps(raw)
	}

	return entity, nil
}

// Normalize converts a raw store snapshot into a View.
func Normalize(snapshot Snapshot) (View, error) {
	info, err := ParsePath(snapshot.Path)
	if err != nil {
		return View{}, err
	}

	view := View{
		Path:       info.Path,
		Kind:       info.Kind,
		Collection: info.Collection,
		Exists:     snapshot.Exists,
		Entities:   make([]Entity, 0, len(snapshot.Documents)),
	}

	for _, doc := range snapshot.Documents {
		entity, err := NormalizeDocument(doc)
		if err != nil {
			return View{}, err
		}
		view.Entities = append(view.Entities, entity)
	}

	return view, nil
}

func convertTimestamps(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if ts, ok := isWireTimestamp(v); ok {
			return ToLocalDate(ts)
		}
		for key, child := range v {
			v[key] = convertTimestamps(child)
		}
		return v
	case []any:
		for i, child := range v {
			v[i] = convertTimestamps(child)
		}
		return v
	default:
		return v
	}
}
