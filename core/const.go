package core

// FieldState tracks a locally mutated field until the store confirms or rejects the write.
type FieldState int

const (
	FieldConfirmed FieldState = iota
	FieldPendingWrite
	FieldReverting
)

func (s FieldState) String() string {
	switch s {
	case FieldConfirmed:
		return "confirmed"
	case FieldPendingWrite:
		return "pending-write"
	case FieldReverting:
		return "reverting"
	default:
		return "unknown"
	}
}

// TrackChange tells a real progress change apart from a clamped no-op.
type TrackChange int

const (
	TrackChanged TrackChange = iota
	TrackAtMaximum
	TrackAtZero
)

func (c TrackChange) String() string {
	switch c {
	case TrackChanged:
		return "changed"
	case TrackAtMaximum:
		return "already at maximum"
	case TrackAtZero:
		return "already at zero"
	default:
		return "unknown"
	}
}

type ProgressRollRequest struct {
	CampaignID  string
	CharacterID string
	UID         string
	GameSystem  string
	TrackType   TrackType
	Label       string
	Ticks       int
	Seed        int64
}
