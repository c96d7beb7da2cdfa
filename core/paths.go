package core

import (
	"strings"
)

// Kind identifies which entity a document path (or collection path) holds.
type Kind int

const (
	KindUnknown Kind = iota
	KindCampaign
	KindCampaignSettings
	KindCampaignNote
	KindCampaignLog
	KindCampaignTrack
	KindCharacter
	KindCharacterAsset
	KindCharacterNote
	KindCharacterTrack
	KindCharacterLog
	KindLocation
	KindLocationPrivate
	KindLocationPublic
)

func (k Kind) String() string {
	switch k {
	case KindCampaign:
		return "campaign"
	case KindCampaignSettings:
		return "campaign.settings"
	case KindCampaignNote:
		return "campaign.note"
	case KindCampaignLog:
		return "campaign.log"
	case KindCampaignTrack:
		return "campaign.track"
	case KindCharacter:
		return "character"
	case KindCharacterAsset:
		return "character.asset"
	case KindCharacterNote:
		return "character.note"
	case KindCharacterTrack:
		return "character.track"
	case KindCharacterLog:
		return "character.log"
	case KindLocation:
		return "location"
	case KindLocationPrivate:
		return "location.private"
	case KindLocationPublic:
		return "location.public"
	default:
		return "unknown"
	}
}

const (
	CampaignsCollection  = "campaigns"
	CharactersCollection = "characters"
	WorldsCollection     = "worlds"

	settingsSegment  = "settings"
	notesSegment     = "notes"
	gameLogSegment   = "game-log"
	tracksSegment    = "tracks"
	assetsSegment    = "assets"
	locationsSegment = "locations"

	// DefaultSettingsDoc is the document id used for the single settings document of a campaign.
	DefaultSettingsDoc = "settings"
)

// "*" matches any single id segment
var pathTemplates = []struct {
	segments []string
	kind     Kind
}{
	{[]string{CampaignsCollection, "*"}, KindCampaign},
	{[]string{CampaignsCollection, "*", settingsSegment, "*"}, KindCampaignSettings},
	{[]string{CampaignsCollection, "*", notesSegment, "*"}, KindCampaignNote},
	{[]string{CampaignsCollection, "*", gameLogSegment, "*"}, KindCampaignLog},
	{[]string{CampaignsCollection, "*", tracksSegment, "*"}, KindCampaignTrack},
	{[]string{CharactersCollection, "*"}, KindCharacter},
	{[]string{CharactersCollection, "*", assetsSegment, "*"}, KindCharacterAsset},
	{[]string{CharactersCollection, "*", notesSegment, "*"}, KindCharacterNote},
	{[]string{CharactersCollection, "*", tracksSegment, "*"}, KindCharacterTrack},
	{[]string{CharactersCollection, "*", gameLogSegment, "*"}, KindCharacterLog},
	{[]string{WorldsCollection, "*", locationsSegment, "*"}, KindLocation},
	{[]string{WorldsCollection, "*", locationsSegment, "*", "private", "details"}, KindLocationPrivate},
	{[]string{WorldsCollection, "*", locationsSegment, "*", "public", "notes"}, KindLocationPublic},
}

// PathInfo is the parsed form of a store path.
type PathInfo struct {
	Path       string
	Kind       Kind
	Collection bool
	Segments   []string
}

// ID returns the last segment: the document id, or the collection name.
func (p PathInfo) ID() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

func splitPath(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, NewErrorValidation("empty path")
	}
	segments := strings.Split(trimmed, "/")
	for _, segment := range segments {
		if segment == "" || segment == "." || segment == ".." {
			return nil, NewErrorValidation("malformed path: " + path)
		}
	}
	return segments, nil
}

func matchSegments(pattern, segments []string) bool {
	for i, segment := range segments {
		if pattern[i] != "*" && pattern[i] != segment {
			return false
		}
	}
	return true
}

// ParsePath classifies a document or collection path. Unknown shapes are still valid paths
// (KindUnknown) as long as they are well formed.
func ParsePath(path string) (PathInfo, error) {
	segments, err := splitPath(path)
	if err != nil {
		return PathInfo{}, err
	}

	info := PathInfo{
		Path:       "/" + strings.Join(segments, "/"),
		Collection: len(segments)%2 == 1,
		Segments:   segments,
	}

	for _, tmpl := range pathTemplates {
		switch len(tmpl.segments) {
		case len(segments):
			if matchSegments(tmpl.segments, segments) {
				info.Kind = tmpl.kind
				return info, nil
			}
		case len(segments) + 1:
			if matchSegments(tmpl.segments[:len(segments)], segments) {
				info.Kind = tmpl.kind
				return info, nil
			}
		}
	}

	return info, nil
}

// CleanPath returns the canonical form of path ("/a/b").
func CleanPath(path string) (string, error) {
	segments, err := splitPath(path)
	if err != nil {
		return "", err
	}
	return "/" + strings.Join(segments, "/"), nil
}

// ParentPath returns the collection that contains a document, or the document that contains a
// collection. The parent of a top level collection is "".
func ParentPath(path string) string {
	trimmed := strings.Trim(path, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	return "/" + trimmed[:idx]
}

func JoinPath(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		e = strings.Trim(e, "/")
		if e != "" {
			parts = append(parts, e)
		}
	}
	return "/" + strings.Join(parts, "/")
}

func CampaignPath(campaignID string) string {
	return JoinPath(CampaignsCollection, campaignID)
}

func CampaignSettingsCollectionPath(campaignID string) string {
	return JoinPath(CampaignsCollection, campaignID, settingsSegment)
}

func CampaignSettingsPath(campaignID, settingsDoc string) string {
	return JoinPath(CampaignsCollection, campaignID, settingsSegment, settingsDoc)
}

func CampaignNotesPath(campaignID string) string {
	return JoinPath(CampaignsCollection, campaignID, notesSegment)
}

func CampaignNotePath(campaignID, noteID string) string {
	return JoinPath(CampaignsCollection, campaignID, notesSegment, noteID)
}

func CampaignGameLogPath(campaignID string) string {
	return JoinPath(CampaignsCollection, campaignID, gameLogSegment)
}

func CampaignGameLogDocPath(campaignID, logID string) string {
	return JoinPath(CampaignsCollection, campaignID, gameLogSegment, logID)
}

func CampaignTracksPath(campaignID string) string {
	return JoinPath(CampaignsCollection, campaignID, tracksSegment)
}

func CampaignTrackPath(campaignID, trackID string) string {
	return JoinPath(CampaignsCollection, campaignID, tracksSegment, trackID)
}

func CharacterPath(characterID string) string {
	return JoinPath(CharactersCollection, characterID)
}

func CharacterAssetsPath(characterID string) string {
	return JoinPath(CharactersCollection, characterID, assetsSegment)
}

func CharacterAssetPath(characterID, assetID string) string {
	return JoinPath(CharactersCollection, characterID, assetsSegment, assetID)
}

func CharacterNotesPath(characterID string) string {
	return JoinPath(CharactersCollection, characterID, notesSegment)
}

func CharacterNotePath(characterID, noteID string) string {
	return JoinPath(CharactersCollection, characterID, notesSegment, noteID)
}

func CharacterTracksPath(characterID string) string {
	return JoinPath(CharactersCollection, characterID, tracksSegment)
}

func CharacterTrackPath(characterID, trackID string) string {
	return JoinPath(CharactersCollection, characterID, tracksSegment, trackID)
}

func CharacterGameLogPath(characterID string) string {
	return JoinPath(CharactersCollection, characterID, gameLogSegment)
}

func CharacterGameLogDocPath(characterID, logID string) string {
	return JoinPath(CharactersCollection, characterID, gameLogSegment, logID)
}

func LocationsPath(worldID string) string {
	return JoinPath(WorldsCollection, worldID, locationsSegment)
}

func LocationPath(worldID, locationID string) string {
	return JoinPath(WorldsCollection, worldID, locationsSegment, locationID)
}

func LocationPrivateDetailsPath(worldID, locationID string) string {
	return LocationPath(worldID, locationID) + "/private/details"
}

func LocationPublicNotesPath(worldID, locationID string) string {
	return LocationPath(worldID, locationID) + "/public/notes"
}
