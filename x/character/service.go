// Package character manages character sheets, their campaign membership and their assets.
package character

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/internal/cascade"
	"github.com/ironfellow/companion/x/gamesystem"
)

var tracer = otel.Tracer("character")

const (
	MinStat = 0
	MaxStat = 5

	MinMeter = 0
	MaxMeter = 5

	MinMomentum      = -6
	MaxMomentum      = 10
	StartingMomentum = 2
)

const (
	PhaseLeave  = "leave"
	PhaseList   = cascade.PhaseList
	PhaseDelete = cascade.PhaseDelete
)

type service struct {
	store     core.RemoteStore
	gateway   core.MutationGateway
	campaigns core.CampaignService
	config    core.Config
}

// NewService creates a new character service
func NewService(
	store core.RemoteStore,
	gateway core.MutationGateway,
	campaigns core.CampaignService,
	config core.Config,
) core.CharacterService {
	return &service{
		store:     store,
		gateway:   gateway,
		campaigns: campaigns,
		config:    config,
	}
}

func validateStat(stat core.Stat, value int) error {
	if !slices.Contains(core.Stats, stat) {
		return core.NewErrorValidation("unknown stat: " + string(stat))
	}
	if value < MinStat || value > MaxStat {
		return core.NewErrorValidation(fmt.Sprintf("%s must be between %d and %d", stat, MinStat, MaxStat))
	}
	return nil
}

func meterBounds(meter core.Meter) (int, int, error) {
	switch meter {
	case core.MeterHealth, core.MeterSpirit, core.MeterSupply:
		return MinMeter, MaxMeter, nil
	case core.MeterMomentum:
		return MinMomentum, MaxMomentum, nil
	}
	return 0, 0, core.NewErrorValidation("unknown meter: " + string(meter))
}

// Create implements core.CharacterService. Every stat must be given. Meters start full and the
// character starts outside of any campaign.
func (s *service) Create(ctx context.Context, character core.Character) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Create")
	defer span.End()

	if character.Name == "" {
		return core.Character{}, core.NewErrorValidation("character name is required")
	}
	if character.UID == "" {
		return core.Character{}, core.NewErrorValidation("character owner is required")
	}
	for stat, value := range character.Stats {
		if err := validateStat(stat, value); err != nil {
			return core.Character{}, err
		}
	}
	for _, stat := range core.Stats {
		if _, ok := character.Stats[stat]; !ok {
			return core.Character{}, core.NewErrorValidation("stats are required: missing " + string(stat))
		}
	}

	system, err := gamesystem.Parse(character.GameSystem)
	if err != nil {
		return core.Character{}, err
	}

	character.GameSystem = string(system)
	character.CampaignID = ""
	character.Health = MaxMeter
	character.Spirit = MaxMeter
	character.Supply = MaxMeter
	character.Momentum = StartingMomentum

	id, err := s.gateway.Add(ctx, "/"+core.CharactersCollection, character)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}
	character.ID = id
	span.SetAttributes(attribute.String("character", id))

	return character, nil
}

// Get implements core.CharacterService
func (s *service) Get(ctx context.Context, characterID string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Get")
	defer span.End()

	if characterID == "" {
		return core.Character{}, core.NewErrorValidation("character id is required")
	}

	doc, err := s.store.Get(ctx, core.CharacterPath(characterID))
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	entity, err := core.NormalizeDocument(doc)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	character, ok := entity.Value.(core.Character)
	if !ok {
		return core.Character{}, fmt.Errorf("unexpected document kind at %s", doc.Path)
	}
	return character, nil
}

// UpdateStat implements core.CharacterService
func (s *service) UpdateStat(ctx context.Context, characterID string, stat core.Stat, value int) error {
	ctx, span := tracer.Start(ctx, "Character.Service.UpdateStat")
	defer span.End()

	if characterID == "" {
		return core.NewErrorValidation("character id is required")
	}
	if err := validateStat(stat, value); err != nil {
		return err
	}

	err := s.gateway.Write(ctx, core.CharacterPath(characterID), core.SetField("stats."+string(stat), value))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// UpdateMeter implements core.CharacterService. Supply is shared by a campaign: a character in
// one updates the campaign's counter instead of its own.
func (s *service) UpdateMeter(ctx context.Context, characterID string, meter core.Meter, value int) error {
	ctx, span := tracer.Start(ctx, "Character.Service.UpdateMeter")
	defer span.End()

	if characterID == "" {
		return core.NewErrorValidation("character id is required")
	}
	lo, hi, err := meterBounds(meter)
	if err != nil {
		return err
	}
	if value < lo || value > hi {
		return core.NewErrorValidation(fmt.Sprintf("%s must be between %d and %d", meter, lo, hi))
	}

	if meter == core.MeterSupply {
		character, err := s.Get(ctx, characterID)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if character.CampaignID != "" {
			span.SetAttributes(attribute.String("campaign", character.CampaignID))
			return s.campaigns.UpdateSupply(ctx, character.CampaignID, value)
		}
	}

	err = s.gateway.Write(ctx, core.CharacterPath(characterID), core.SetField(string(meter), value))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// JoinCampaign implements core.CharacterService. The member is added to the campaign first and
// the character's back reference second; if the second write fails the first one is undone.
// Membership is edited with array union/remove so concurrent joins never drop each other.
func (s *service) JoinCampaign(ctx context.Context, characterID, campaignID string) error {
	ctx, span := tracer.Start(ctx, "Character.Service.JoinCampaign")
	defer span.End()

	if campaignID == "" {
		return core.NewErrorValidation("campaign id is required")
	}
	span.SetAttributes(
		attribute.String("character", characterID),
		attribute.String("campaign", campaignID),
	)

	character, err := s.Get(ctx, characterID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if character.CampaignID != "" && character.CampaignID != campaignID {
		return core.NewErrorValidation(fmt.Sprintf("character %s already belongs to campaign %s", characterID, character.CampaignID))
	}

	campaign, err := s.campaigns.Get(ctx, campaignID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	member := core.CampaignCharacter{UID: character.UID, CharacterID: characterID}
	isMember := slices.ContainsFunc(campaign.Characters, func(existing core.CampaignCharacter) bool {
		return existing.CharacterID == characterID
	})
	if !isMember {
		err = s.gateway.Write(ctx, core.CampaignPath(campaignID), core.UnionField("characters", member))
		if err != nil {
			span.RecordError(err)
			return err
		}
	}

	if character.CampaignID == campaignID {
		return nil
	}

	err = s.gateway.Write(ctx, core.CharacterPath(characterID), core.SetField("campaignId", campaignID))
	if err != nil {
		span.RecordError(err)
		if !isMember {
			s.rollback(ctx, core.CampaignPath(campaignID), core.RemoveField("characters", member))
		}
		return err
	}

	return nil
}

// LeaveCampaign implements core.CharacterService. The back reference is cleared first so a
// character never points at a campaign that no longer lists it for long.
func (s *service) LeaveCampaign(ctx context.Context, characterID string) error {
	ctx, span := tracer.Start(ctx, "Character.Service.LeaveCampaign")
	defer span.End()

	character, err := s.Get(ctx, characterID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if character.CampaignID == "" {
		return nil
	}
	campaignID := character.CampaignID
	span.SetAttributes(attribute.String("campaign", campaignID))

	campaign, err := s.campaigns.Get(ctx, campaignID)
	if err != nil && !errors.Is(err, core.ErrorNotFound{}) {
		span.RecordError(err)
		return err
	}
	campaignExists := err == nil

	err = s.gateway.Write(ctx, core.CharacterPath(characterID), core.UnsetField("campaignId"))
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !campaignExists {
		return nil
	}

	err = s.removeMember(ctx, campaign, characterID)
	if err != nil {
		span.RecordError(err)
		s.rollback(ctx, core.CharacterPath(characterID), core.SetField("campaignId", campaignID))
		return err
	}

	return nil
}

func (s *service) removeMember(ctx context.Context, campaign core.Campaign, characterID string) error {
	var members []any
	for _, member := range campaign.Characters {
		if member.CharacterID == characterID {
			members = append(members, member)
		}
	}
	if len(members) == 0 {
		return nil
	}
	return s.gateway.Write(ctx, core.CampaignPath(campaign.ID), core.RemoveField("characters", members...))
}

func (s *service) rollback(ctx context.Context, path string, patch core.Patch) {
	err := s.gateway.Write(ctx, path, patch)
	if err != nil {
		slog.ErrorContext(
			ctx, fmt.Sprintf("failed to roll back %s: %v", path, err),
			slog.String("module", "character"),
		)
	}
}

func ownedCollections(characterID string) []string {
	return []string{
		core.CharacterAssetsPath(characterID),
		core.CharacterNotesPath(characterID),
		core.CharacterTracksPath(characterID),
		core.CharacterGameLogPath(characterID),
	}
}

// Delete implements core.CharacterService. The character leaves its campaign first; after that
// the character document and every document it owns are deleted independently and reported once.
func (s *service) Delete(ctx context.Context, characterID string) (core.DeletionReport, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Delete")
	defer span.End()

	if characterID == "" {
		report := core.DeletionReport{
			Status:   core.DeletionFailedBeforeStart,
			Failures: []core.OperationFailure{{Phase: PhaseLeave, Err: core.NewErrorValidation("character id is required")}},
		}
		return report, report.Err()
	}
	span.SetAttributes(attribute.String("character", characterID))

	report := core.DeletionReport{
		Detached: []string{},
		Deleted:  []string{},
	}

	character, err := s.Get(ctx, characterID)
	switch {
	case err == nil:
		if character.CampaignID != "" {
			campaign, err := s.campaigns.Get(ctx, character.CampaignID)
			if err == nil {
				err = s.removeMember(ctx, campaign, characterID)
			}
			if err != nil && !errors.Is(err, core.ErrorNotFound{}) {
				report.Status = core.DeletionFailedBeforeStart
				report.Failures = append(report.Failures, core.OperationFailure{
					Phase: PhaseLeave,
					Path:  core.CampaignPath(character.CampaignID),
					Err:   err,
				})
				return s.finish(ctx, characterID, report)
			}
			report.Detached = append(report.Detached, character.CampaignID)
		}
	case errors.Is(err, core.ErrorNotFound{}):
	default:
		report.Status = core.DeletionFailedBeforeStart
		report.Failures = append(report.Failures, core.OperationFailure{Phase: PhaseLeave, Path: core.CharacterPath(characterID), Err: err})
		return s.finish(ctx, characterID, report)
	}

	deleted, failures := cascade.Sweep(ctx, s.store, s.gateway, core.CharacterPath(characterID), ownedCollections(characterID), s.config.MaxConcurrentDeletes)
	report.Deleted = deleted
	report.Failures = append(report.Failures, failures...)

	if len(report.Failures) > 0 {
		report.Status = core.DeletionPartiallySucceeded
	} else {
		report.Status = core.DeletionSucceeded
	}
	return s.finish(ctx, characterID, report)
}

func (s *service) finish(ctx context.Context, characterID string, report core.DeletionReport) (core.DeletionReport, error) {
	err := report.Err()
	if err != nil {
		slog.ErrorContext(
			ctx, fmt.Sprintf("character %s deletion %s: %v", characterID, report.Status, err),
			slog.String("module", "character"),
		)
		return report, err
	}

	slog.InfoContext(
		ctx, fmt.Sprintf("character %s deleted (%d documents)", characterID, len(report.Deleted)),
		slog.String("module", "character"),
	)
	return report, nil
}
