// Package gamesystem holds the per game-system variant tables.
package gamesystem

import (
	"github.com/ironfellow/companion/core"
)

type GameSystem string

const (
	Ironsworn  GameSystem = "ironsworn"
	Starforged GameSystem = "starforged"
)

// Default is used for characters and campaigns that do not name a system.
const Default = Starforged

func Parse(value string) (GameSystem, error) {
	switch GameSystem(value) {
	case Ironsworn:
		return Ironsworn, nil
	case Starforged:
		return Starforged, nil
	case "":
		return Default, nil
	}
	return "", core.NewErrorValidation("unknown game system: " + value)
}

// Variant is everything that differs between the supported systems.
type Variant struct {
	System        GameSystem
	Name          string
	ProgressMoves map[core.TrackType]string
	TrackTypes    []core.TrackType
}

var variants = map[GameSystem]Variant{
	Ironsworn: {
		System: Ironsworn,
		Name:   "Ironsworn",
		ProgressMoves: map[core.TrackType]string{
			core.TrackVow:          "ironsworn/moves/quest/fulfill_your_vow",
			core.TrackJourney:      "ironsworn/moves/adventure/reach_your_destination",
			core.TrackFray:         "ironsworn/moves/combat/end_the_fight",
			core.TrackBondProgress: "",
		},
		TrackTypes: []core.TrackType{core.TrackVow, core.TrackJourney, core.TrackFray, core.TrackBondProgress},
	},
	Starforged: {
		System: Starforged,
		Name:   "Starforged",
		ProgressMoves: map[core.TrackType]string{
			core.TrackVow:          "starforged/moves/quest/fulfill_your_vow",
			core.TrackJourney:      "starforged/moves/exploration/finish_an_expedition",
			core.TrackFray:         "starforged/moves/combat/take_decisive_action",
			core.TrackBondProgress: "starforged/moves/connection/forge_a_bond",
		},
		TrackTypes: []core.TrackType{core.TrackVow, core.TrackJourney, core.TrackFray, core.TrackBondProgress},
	},
}

// Lookup returns the variant table of a system.
func Lookup(system GameSystem) (Variant, error) {
	variant, ok := variants[system]
	if !ok {
		return Variant{}, core.NewErrorValidation("unknown game system: " + string(system))
	}
	return variant, nil
}

// ProgressMove returns the move a progress roll on the given track type resolves.
// An empty id with a nil error means the system has no such move.
func (v Variant) ProgressMove(trackType core.TrackType) (string, error) {
	if !trackType.Valid() {
		return "", core.NewErrorValidation("unknown track type: " + string(trackType))
	}
	return v.ProgressMoves[trackType], nil
}

// Stats is the same for both systems.
func (v Variant) Stats() []core.Stat {
	return core.Stats
}
