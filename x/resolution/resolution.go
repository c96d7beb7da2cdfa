// Package resolution resolves action rolls, progress rolls and oracle rolls.
// Nothing in this package performs I/O; every random roll is driven by an explicit seed.
package resolution

import (
	"errors"
	"math/rand"
	"strconv"

	"github.com/ironfellow/companion/core"
)

const (
	actionDieSides    = 6
	challengeDieSides = 10

	// MaxTotal caps the action score compared against the challenge dice.
	MaxTotal = 10
)

type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomeStrongHit
	OutcomeWeakHit
	OutcomeMiss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStrongHit:
		return "Strong hit"
	case OutcomeWeakHit:
		return "Weak hit"
	case OutcomeMiss:
		return "Miss"
	default:
		return "Unspecified"
	}
}

// RollResult converts the outcome into its stored form.
func (o Outcome) RollResult() core.RollResult {
	switch o {
	case OutcomeStrongHit:
		return core.RollResultStrongHit
	case OutcomeWeakHit:
		return core.RollResultWeakHit
	case OutcomeMiss:
		return core.RollResultMiss
	default:
		return ""
	}
}

var ErrInvalidActionDie = errors.New("action die must be between 1 and 6")

var ErrInvalidChallengeDie = errors.New("challenge dice must be between 1 and 10")

var ErrInvalidProgress = errors.New("progress ticks must be non-negative")

var ErrNegativeAdds = errors.New("adds must be non-negative")

// StatRollRequest describes an action roll: the action die is rolled and added to the stat.
type StatRollRequest struct {
	Modifier int
	Adds     int
	Seed     int64
}

// StatRollResult is a resolved action roll.
type StatRollResult struct {
	Action     int
	Modifier   int
	Adds       int
	Challenge1 int
	Challenge2 int
	// Sum is action + modifier + adds before the cap.
	Sum int
	// Total is Sum capped at MaxTotal; it is what the challenge dice are compared against.
	Total      int
	Outcome    Outcome
	Match      bool
	NaturalOne bool
}

// DisplayTotal renders the total the way the roll log shows it.
func (r StatRollResult) DisplayTotal() string {
	if r.Sum > MaxTotal {
		return strconv.Itoa(MaxTotal) + " (Max)"
	}
	return strconv.Itoa(r.Sum)
}

// Classify compares a score against both challenge dice. A tie goes to the challenge die.
func Classify(total, challenge1, challenge2 int) Outcome {
	beats1 := total > challenge1
	beats2 := total > challenge2
	switch {
	case beats1 && beats2:
		return OutcomeStrongHit
	case beats1 || beats2:
		return OutcomeWeakHit
	default:
		return OutcomeMiss
	}
}

func validChallengeDice(challenge1, challenge2 int) bool {
	return challenge1 >= 1 && challenge1 <= challengeDieSides &&
		challenge2 >= 1 && challenge2 <= challengeDieSides
}

// EvaluateStatRoll deterministically resolves an action roll from already rolled dice.
func EvaluateStatRoll(action, modifier, adds, challenge1, challenge2 int) (StatRollResult, error) {
	if action < 1 || action > actionDieSides {
		return StatRollResult{}, ErrInvalidActionDie
	}
	if !validChallengeDice(challenge1, challenge2) {
		return StatRollResult{}, ErrInvalidChallengeDie
	}
	if adds < 0 {
		return StatRollResult{}, ErrNegativeAdds
	}

	sum := action + modifier + adds
	total := min(sum, MaxTotal)

	return StatRollResult{
		Action:     action,
		Modifier:   modifier,
		Adds:       adds,
		Challenge1: challenge1,
		Challenge2: challenge2,
		Sum:        sum,
		Total:      total,
		Outcome:    Classify(total, challenge1, challenge2),
		Match:      challenge1 == challenge2,
		NaturalOne: action == 1,
	}, nil
}

// RollStat rolls the action die and both challenge dice, in that order, from the request seed.
func RollStat(request StatRollRequest) (StatRollResult, error) {
	rng := rand.New(rand.NewSource(request.Seed))
	action := rollDie(rng, actionDieSides)
	challenge1 := rollDie(rng, challengeDieSides)
	challenge2 := rollDie(rng, challengeDieSides)
	return EvaluateStatRoll(action, request.Modifier, request.Adds, challenge1, challenge2)
}

// ProgressScore converts ticks into the score used by a progress roll.
func ProgressScore(ticks int) int {
	return min(ticks/4, MaxTotal)
}

type ProgressRollRequest struct {
	Ticks int
	Seed  int64
}

type ProgressRollResult struct {
	Ticks      int
	Score      int
	Challenge1 int
	Challenge2 int
	Outcome    Outcome
	Match      bool
}

// EvaluateProgressRoll resolves a progress roll. There is no action die; the score stands in for it.
func EvaluateProgressRoll(ticks, challenge1, challenge2 int) (ProgressRollResult, error) {
	if ticks < 0 {
		return ProgressRollResult{}, ErrInvalidProgress
	}
	if !validChallengeDice(challenge1, challenge2) {
		return ProgressRollResult{}, ErrInvalidChallengeDie
	}

	score := ProgressScore(ticks)
	return ProgressRollResult{
		Ticks:      ticks,
		Score:      score,
		Challenge1: challenge1,
		Challenge2: challenge2,
		Outcome:    Classify(score, challenge1, challenge2),
		Match:      challenge1 == challenge2,
	}, nil
}

func RollProgress(request ProgressRollRequest) (ProgressRollResult, error) {
	if request.Ticks < 0 {
		return ProgressRollResult{}, ErrInvalidProgress
	}
	rng := rand.New(rand.NewSource(request.Seed))
	challenge1 := rollDie(rng, challengeDieSides)
	challenge2 := rollDie(rng, challengeDieSides)
	return EvaluateProgressRoll(request.Ticks, challenge1, challenge2)
}

func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}

// StatRoll builds the log record of an action roll.
func StatRoll(result StatRollResult, label, moveName string) core.Roll {
	return core.Roll{
		Kind:       core.RollKindStat,
		RollLabel:  label,
		MoveName:   moveName,
		Action:     result.Action,
		Modifier:   result.Modifier,
		Adds:       result.Adds,
		Challenge1: result.Challenge1,
		Challenge2: result.Challenge2,
		Result:     result.Outcome.RollResult(),
		Match:      result.Match,
	}
}

// ProgressRoll builds the log record of a progress roll.
func ProgressRoll(result ProgressRollResult, trackType core.TrackType, label, moveName string) core.Roll {
	return core.Roll{
		Kind:          core.RollKindTrackProgress,
		RollLabel:     label,
		MoveName:      moveName,
		TrackType:     trackType,
		TrackProgress: result.Score,
		Challenge1:    result.Challenge1,
		Challenge2:    result.Challenge2,
		Result:        result.Outcome.RollResult(),
		Match:         result.Match,
	}
}
