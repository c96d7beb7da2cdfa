package resolution

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/ironfellow/companion/core"
)

const oracleDieSides = 100

var ErrInvalidOracleTable = errors.New("oracle table must cover 1-100 without gaps or overlaps")

var ErrInvalidOracleRoll = errors.New("oracle roll must be between 1 and 100")

// OracleEntry matches every roll in [Min, Max].
type OracleEntry struct {
	Min    int    `json:"min" yaml:"min"`
	Max    int    `json:"max" yaml:"max"`
	Result string `json:"result" yaml:"result"`
}

type OracleTable struct {
	ID      string        `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Entries []OracleEntry `json:"entries" yaml:"entries"`
}

// Validate checks that every d100 result maps to exactly one entry.
func (t OracleTable) Validate() error {
	if len(t.Entries) == 0 {
		return ErrInvalidOracleTable
	}

	entries := make([]OracleEntry, len(t.Entries))
	copy(entries, t.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Min < entries[j].Min })

	next := 1
	for _, entry := range entries {
		if entry.Min != next || entry.Max < entry.Min {
			return fmt.Errorf("%w: %s at %d-%d", ErrInvalidOracleTable, t.ID, entry.Min, entry.Max)
		}
		next = entry.Max + 1
	}
	if next != oracleDieSides+1 {
		return fmt.Errorf("%w: %s ends at %d", ErrInvalidOracleTable, t.ID, next-1)
	}
	return nil
}

func (t OracleTable) Lookup(roll int) (string, error) {
	if roll < 1 || roll > oracleDieSides {
		return "", ErrInvalidOracleRoll
	}
	for _, entry := range t.Entries {
		if roll >= entry.Min && roll <= entry.Max {
			return entry.Result, nil
		}
	}
	return "", fmt.Errorf("%w: no entry for %d in %s", ErrInvalidOracleTable, roll, t.ID)
}

type OracleRollResult struct {
	TableID string
	Roll    int
	Result  string
}

// RollOracle rolls a d100 on a validated table.
func RollOracle(table OracleTable, seed int64) (OracleRollResult, error) {
	if err := table.Validate(); err != nil {
		return OracleRollResult{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	roll := rollDie(rng, oracleDieSides)
	result, err := table.Lookup(roll)
	if err != nil {
		return OracleRollResult{}, err
	}

	return OracleRollResult{
		TableID: table.ID,
		Roll:    roll,
		Result:  result,
	}, nil
}

func OracleRoll(result OracleRollResult, label string) core.Roll {
	return core.Roll{
		Kind:         core.RollKindOracle,
		RollLabel:    label,
		OracleID:     result.TableID,
		OracleRoll:   result.Roll,
		OracleResult: result.Result,
	}
}
