package track

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ironfellow/companion/core"
)

func TestStep(t *testing.T) {
	assert.Equal(t, 1, Step(core.DifficultyEpic))
	assert.Equal(t, 2, Step(core.DifficultyExtreme))
	assert.Equal(t, 4, Step(core.DifficultyFormidable))
	assert.Equal(t, 8, Step(core.DifficultyDangerous))
	assert.Equal(t, 12, Step(core.DifficultyTroublesome))
	assert.Equal(t, 1, Step(core.DifficultyNone))
}

func TestIncrementDecrementRoundTrip(t *testing.T) {
	for _, difficulty := range []core.Difficulty{
		core.DifficultyNone,
		core.DifficultyEpic,
		core.DifficultyExtreme,
		core.DifficultyFormidable,
		core.DifficultyDangerous,
		core.DifficultyTroublesome,
	} {
		start := core.ProgressTrack{Type: core.TrackVow, Difficulty: difficulty, Value: 12, Max: 40}

		marked, change := Increment(start)
		assert.Equal(t, core.TrackChanged, change, difficulty)
		assert.Equal(t, 12+Step(difficulty), marked.Value, difficulty)

		cleared, change := Decrement(marked)
		assert.Equal(t, core.TrackChanged, change, difficulty)
		assert.Equal(t, start, cleared, difficulty)
	}
}

func TestIncrementClamps(t *testing.T) {
	track := core.ProgressTrack{Type: core.TrackFray, Difficulty: core.DifficultyTroublesome, Value: 36, Max: 40}

	marked, change := Increment(track)
	assert.Equal(t, core.TrackChanged, change)
	assert.Equal(t, 40, marked.Value)

	again, change := Increment(marked)
	assert.Equal(t, core.TrackAtMaximum, change)
	assert.Equal(t, marked, again)
}

func TestDecrementClamps(t *testing.T) {
	track := core.ProgressTrack{Type: core.TrackJourney, Difficulty: core.DifficultyDangerous, Value: 3, Max: 40}

	cleared, change := Decrement(track)
	assert.Equal(t, core.TrackChanged, change)
	assert.Equal(t, 0, cleared.Value)

	again, change := Decrement(cleared)
	assert.Equal(t, core.TrackAtZero, change)
	assert.Equal(t, cleared, again)
}

func TestBoxes(t *testing.T) {
	assert.Equal(t, []int{4, 4, 2, 0, 0, 0, 0, 0, 0, 0}, Boxes(10, 40))
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, Boxes(0, 40))
	assert.Equal(t, []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4}, Boxes(40, 40))
	assert.Equal(t, []int{4, 1}, Boxes(5, 8))
	assert.Empty(t, Boxes(5, -4))
	assert.Empty(t, Boxes(5, 0))
}

func TestScore(t *testing.T) {
	assert.Equal(t, 9, Score(core.ProgressTrack{Value: 37, Max: 40}))
	assert.Equal(t, 10, Score(core.ProgressTrack{Value: 40, Max: 40}))
}

func TestValidate(t *testing.T) {
	valid := core.ProgressTrack{Type: core.TrackVow, Difficulty: core.DifficultyEpic, Value: 0, Max: 40}
	assert.NoError(t, Validate(valid))

	invalid := []core.ProgressTrack{
		{Type: "legacy", Max: 40},
		{Type: core.TrackVow, Difficulty: "impossible", Max: 40},
		{Type: core.TrackVow, Max: 42},
		{Type: core.TrackVow, Max: 0},
		{Type: core.TrackVow, Max: 40, Value: 41},
		{Type: core.TrackVow, Max: 40, Value: -1},
	}
	for _, track := range invalid {
		assert.True(t, errors.Is(Validate(track), core.ErrorValidation{}), "%+v", track)
	}
}
