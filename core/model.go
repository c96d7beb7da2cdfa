package core

import (
	"time"
)

type Stat string

const (
	StatEdge   Stat = "edge"
	StatHeart  Stat = "heart"
	StatIron   Stat = "iron"
	StatShadow Stat = "shadow"
	StatWits   Stat = "wits"
)

// Stats lists the five attributes every character carries, in sheet order.
var Stats = []Stat{StatEdge, StatHeart, StatIron, StatShadow, StatWits}

type StatsMap map[Stat]int

type Meter string

const (
	MeterHealth   Meter = "health"
	MeterSpirit   Meter = "spirit"
	MeterSupply   Meter = "supply"
	MeterMomentum Meter = "momentum"
)

type PortraitPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Portrait struct {
	Filename string           `json:"filename"`
	URL      string           `json:"url"`
	Position PortraitPosition `json:"position"`
	Scale    float64          `json:"scale"`
}

// Character is owned by the player whose uid it carries.
// CampaignID is a back reference only; the campaign does not own the character.
type Character struct {
	ID         string    `json:"-"`
	UID        string    `json:"uid"`
	Name       string    `json:"name"`
	Stats      StatsMap  `json:"stats"`
	Health     int       `json:"health"`
	Spirit     int       `json:"spirit"`
	Supply     int       `json:"supply"`
	Momentum   int       `json:"momentum"`
	CampaignID string    `json:"campaignId,omitempty"`
	Portrait   *Portrait `json:"profileImage,omitempty"`
	GameSystem string    `json:"gameSystem,omitempty"`
}

type CampaignCharacter struct {
	UID         string `json:"uid"`
	CharacterID string `json:"characterId"`
}

// Campaign keeps a denormalized list of member characters.
type Campaign struct {
	ID          string              `json:"-"`
	Name        string              `json:"name"`
	GMIDs       []string            `json:"gmIds"`
	Characters  []CampaignCharacter `json:"characters"`
	Supply      int                 `json:"supply"`
	LastUpdated time.Time           `json:"-"`
}

// CharacterIDs returns the member character ids in membership order.
func (c Campaign) CharacterIDs() []string {
	ids := make([]string, 0, len(c.Characters))
	for _, member := range c.Characters {
		ids = append(ids, member.CharacterID)
	}
	return ids
}

type StoredCampaign struct {
	Campaign
	LastUpdatedTimestamp WireTimestamp `json:"lastUpdatedTimestamp"`
}

func CampaignFromStored(stored StoredCampaign) Campaign {
	campaign := stored.Campaign
	if !stored.LastUpdatedTimestamp.IsZero() {
		campaign.LastUpdated = ToLocalDate(stored.LastUpdatedTimestamp)
	}
	return campaign
}

func CampaignToStored(campaign Campaign) StoredCampaign {
	return StoredCampaign{
		Campaign:             campaign,
		LastUpdatedTimestamp: ToWireTimestamp(campaign.LastUpdated),
	}
}

type CampaignSettings struct {
	ID              string   `json:"-"`
	HiddenMoveIDs   []string `json:"hiddenMoveIds"`
	HiddenOracleIDs []string `json:"hiddenOracleIds"`
}

type AssetTrack struct {
	Value int `json:"value"`
	Max   int `json:"max"`
}

// Asset lives under its character and is deleted with it.
type Asset struct {
	ID               string            `json:"-"`
	AssetID          string            `json:"id"`
	Order            int               `json:"order"`
	EnabledAbilities map[string]bool   `json:"enabledAbilities"`
	Inputs           map[string]string `json:"inputs,omitempty"`
	Track            *AssetTrack       `json:"track,omitempty"`
	CustomAsset      map[string]any    `json:"customAsset,omitempty"`
}

type TrackType string

const (
	TrackVow          TrackType = "vow"
	TrackJourney      TrackType = "journey"
	TrackFray         TrackType = "fray"
	TrackBondProgress TrackType = "bondProgress"
)

func (t TrackType) Valid() bool {
	switch t {
	case TrackVow, TrackJourney, TrackFray, TrackBondProgress:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyNone        Difficulty = ""
	DifficultyEpic        Difficulty = "epic"
	DifficultyExtreme     Difficulty = "extreme"
	DifficultyFormidable  Difficulty = "formidable"
	DifficultyDangerous   Difficulty = "dangerous"
	DifficultyTroublesome Difficulty = "troublesome"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyNone, DifficultyEpic, DifficultyExtreme, DifficultyFormidable, DifficultyDangerous, DifficultyTroublesome:
		return true
	}
	return false
}

type TrackStatus string

const (
	TrackStatusActive    TrackStatus = "active"
	TrackStatusCompleted TrackStatus = "completed"
)

// ProgressTrack values are in ticks. 0 <= Value <= Max and Max is a multiple of 4.
type ProgressTrack struct {
	ID          string      `json:"-"`
	Type        TrackType   `json:"type"`
	Label       string      `json:"label"`
	Description string      `json:"description,omitempty"`
	Difficulty  Difficulty  `json:"difficulty,omitempty"`
	Value       int         `json:"value"`
	Max         int         `json:"max"`
	Status      TrackStatus `json:"status"`
}

type Note struct {
	ID      string `json:"-"`
	Title   string `json:"title"`
	Order   int    `json:"order"`
	Content string `json:"content,omitempty"`
}

type RollKind string

const (
	RollKindStat          RollKind = "stat"
	RollKindTrackProgress RollKind = "trackProgress"
	RollKindOracle        RollKind = "oracleTable"
)

type RollResult string

const (
	RollResultStrongHit RollResult = "HIT"
	RollResultWeakHit   RollResult = "WEAK_HIT"
	RollResultMiss      RollResult = "MISS"
)

// Roll is an immutable record of a resolved dice action.
type Roll struct {
	Kind        RollKind  `json:"type"`
	RollLabel   string    `json:"rollLabel"`
	MoveName    string    `json:"moveName,omitempty"`
	CharacterID string    `json:"characterId,omitempty"`
	UID         string    `json:"uid"`
	GMsOnly     bool      `json:"gmsOnly"`
	Timestamp   time.Time `json:"-"`

	Action        int        `json:"action,omitempty"`
	Modifier      int        `json:"modifier,omitempty"`
	Adds          int        `json:"adds,omitempty"`
	TrackType     TrackType  `json:"trackType,omitempty"`
	TrackProgress int        `json:"trackProgress,omitempty"`
	Challenge1    int        `json:"challenge1,omitempty"`
	Challenge2    int        `json:"challenge2,omitempty"`
	Result        RollResult `json:"result,omitempty"`
	Match         bool       `json:"match,omitempty"`

	OracleID     string `json:"oracleId,omitempty"`
	OracleRoll   int    `json:"roll,omitempty"`
	OracleResult string `json:"oracleResult,omitempty"`
}

type GameLogEntry struct {
	ID string `json:"-"`
	Roll
}

type StoredRoll struct {
	Roll
	Timestamp WireTimestamp `json:"timestamp"`
}

func RollFromStored(stored StoredRoll) Roll {
	roll := stored.Roll
	roll.Timestamp = ToLocalDate(stored.Timestamp)
	return roll
}

func RollToStored(roll Roll) StoredRoll {
	return StoredRoll{
		Roll:      roll,
		Timestamp: ToWireTimestamp(roll.Timestamp),
	}
}

type Location struct {
	ID                string    `json:"-"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	SharedWithPlayers bool      `json:"sharedWithPlayers"`
	UpdatedDate       time.Time `json:"-"`
}

type StoredLocation struct {
	Location
	UpdatedTimestamp WireTimestamp `json:"updatedTimestamp"`
}

func LocationFromStored(stored StoredLocation) Location {
	location := stored.Location
	location.UpdatedDate = ToLocalDate(stored.UpdatedTimestamp)
	return location
}

// LocationToStored stamps the location with the current server time.
func LocationToStored(location Location) StoredLocation {
	return StoredLocation{
		Location:         location,
		UpdatedTimestamp: ServerTimestamp(),
	}
}

type LocationPrivateDetails struct {
	GMNotes string `json:"gmNotes"`
}

type LocationPublicNotes struct {
	Notes string `json:"notes"`
}
