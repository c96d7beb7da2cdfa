package track

import (
	"fmt"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/x/resolution"
)

const (
	// DefaultMax is ten boxes of four ticks.
	DefaultMax  = 40
	TicksPerBox = 4
)

var steps = map[core.Difficulty]int{
	core.DifficultyEpic:        1,
	core.DifficultyExtreme:     2,
	core.DifficultyFormidable:  4,
	core.DifficultyDangerous:   8,
	core.DifficultyTroublesome: 12,
}

// Step returns the ticks one mark adds. No difficulty marks a single tick.
func Step(difficulty core.Difficulty) int {
	if step, ok := steps[difficulty]; ok {
		return step
	}
	return 1
}

// Validate checks the value object invariants.
func Validate(track core.ProgressTrack) error {
	if !track.Type.Valid() {
		return core.NewErrorValidation(fmt.Sprintf("unknown track type %q", track.Type))
	}
	if !track.Difficulty.Valid() {
		return core.NewErrorValidation(fmt.Sprintf("unknown difficulty %q", track.Difficulty))
	}
	if track.Max <= 0 || track.Max%TicksPerBox != 0 {
		return core.NewErrorValidation(fmt.Sprintf("max must be a positive multiple of %d, got %d", TicksPerBox, track.Max))
	}
	if track.Value < 0 || track.Value > track.Max {
		return core.NewErrorValidation(fmt.Sprintf("value %d out of range [0, %d]", track.Value, track.Max))
	}
	return nil
}

// Increment marks progress by one difficulty step, clamped at Max.
func Increment(track core.ProgressTrack) (core.ProgressTrack, core.TrackChange) {
	if track.Value >= track.Max {
		return track, core.TrackAtMaximum
	}
	track.Value = min(track.Value+Step(track.Difficulty), track.Max)
	return track, core.TrackChanged
}

// Decrement clears progress by one difficulty step, clamped at zero.
func Decrement(track core.ProgressTrack) (core.ProgressTrack, core.TrackChange) {
	if track.Value <= 0 {
		return track, core.TrackAtZero
	}
	track.Value = max(track.Value-Step(track.Difficulty), 0)
	return track, core.TrackChanged
}

// Boxes returns the ticks held by each box.
func Boxes(value, maxTicks int) []int {
	boxes := make([]int, max(maxTicks, 0)/TicksPerBox)
	for i := range boxes {
		boxes[i] = min(max(value-TicksPerBox*i, 0), TicksPerBox)
	}
	return boxes
}

// Score is the progress score a roll on the track uses.
func Score(track core.ProgressTrack) int {
	return resolution.ProgressScore(track.Value)
}
