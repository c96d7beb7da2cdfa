// Package campaign manages campaigns and their cascading deletion.
package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

var tracer = otel.Tracer("campaign")

const (
	MinSupply = 0
	MaxSupply = 5
)

type service struct {
	store       core.RemoteStore
	gateway     core.MutationGateway
	coordinator *Coordinator
}

// NewService creates a new campaign service
func NewService(store core.RemoteStore, gateway core.MutationGateway, config core.Config) core.CampaignService {
	return &service{
		store:       store,
		gateway:     gateway,
		coordinator: NewCoordinator(store, gateway, config),
	}
}

// Create implements core.CampaignService
func (s *service) Create(ctx context.Context, name, gmID string) (core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Service.Create")
	defer span.End()

	if name == "" {
		return core.Campaign{}, core.NewErrorValidation("campaign name is required")
	}

	campaign := core.Campaign{
		Name:        name,
		GMIDs:       []string{},
		Characters:  []core.CampaignCharacter{},
		Supply:      MaxSupply,
		LastUpdated: core.ToLocalDate(core.ServerTimestamp()),
	}
	if gmID != "" {
		campaign.GMIDs = append(campaign.GMIDs, gmID)
	}

	id, err := s.gateway.Add(ctx, "/"+core.CampaignsCollection, core.CampaignToStored(campaign))
	if err != nil {
		span.RecordError(err)
		return core.Campaign{}, err
	}
	campaign.ID = id

	return campaign, nil
}

// Get implements core.CampaignService
func (s *service) Get(ctx context.Context, campaignID string) (core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Service.Get")
	defer span.End()

	if campaignID == "" {
		return core.Campaign{}, core.NewErrorValidation("campaign id is required")
	}
	span.SetAttributes(attribute.String("campaign", campaignID))

	doc, err := s.store.Get(ctx, core.CampaignPath(campaignID))
	if err != nil {
		span.RecordError(err)
		return core.Campaign{}, err
	}

	entity, err := core.NormalizeDocument(doc)
	if err != nil {
		span.RecordError(err)
		return core.Campaign{}, err
	}

	campaign, ok := entity.Value.(core.Campaign)
	if !ok {
		return core.Campaign{}, fmt.Errorf("unexpected document kind at %s", doc.Path)
	}
	return campaign, nil
}

// UpdateSupply implements core.CampaignService
func (s *service) UpdateSupply(ctx context.Context, campaignID string, supply int) error {
	ctx, span := tracer.Start(ctx, "Campaign.Service.UpdateSupply")
	defer span.End()

	if campaignID == "" {
		return core.NewErrorValidation("campaign id is required")
	}
	if supply < MinSupply || supply > MaxSupply {
		return core.NewErrorValidation(fmt.Sprintf("supply must be between %d and %d", MinSupply, MaxSupply))
	}

	err := s.gateway.Write(ctx, core.CampaignPath(campaignID), core.SetField("supply", supply))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// AddGM implements core.CampaignService
func (s *service) AddGM(ctx context.Context, campaignID, gmID string) error {
	ctx, span := tracer.Start(ctx, "Campaign.Service.AddGM")
	defer span.End()

	if gmID == "" {
		return core.NewErrorValidation("gm id is required")
	}

	campaign, err := s.Get(ctx, campaignID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if slices.Contains(campaign.GMIDs, gmID) {
		return nil
	}

	gmIDs := append(slices.Clone(campaign.GMIDs), gmID)
	err = s.gateway.Write(ctx, core.CampaignPath(campaignID), core.SetField("gmIds", gmIDs))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// UpdateSettings implements core.CampaignService
func (s *service) UpdateSettings(ctx context.Context, campaignID string, settings core.CampaignSettings) error {
	ctx, span := tracer.Start(ctx, "Campaign.Service.UpdateSettings")
	defer span.End()

	if campaignID == "" {
		return core.NewErrorValidation("campaign id is required")
	}
	if settings.HiddenMoveIDs == nil {
		settings.HiddenMoveIDs = []string{}
	}
	if settings.HiddenOracleIDs == nil {
		settings.HiddenOracleIDs = []string{}
	}

	err := s.gateway.Set(ctx, core.CampaignSettingsPath(campaignID, core.DefaultSettingsDoc), settings)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// Delete implements core.CampaignService. A campaign document that is already gone still has
// its owned collections swept, so a partially failed deletion can be repeated.
func (s *service) Delete(ctx context.Context, campaignID string) (core.DeletionReport, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Service.Delete")
	defer span.End()

	var characterIDs []string
	campaign, err := s.Get(ctx, campaignID)
	switch {
	case err == nil:
		characterIDs = campaign.CharacterIDs()
	case errors.Is(err, core.ErrorNotFound{}):
		slog.InfoContext(
			ctx, fmt.Sprintf("campaign %s not found, sweeping owned collections", campaignID),
			slog.String("module", "campaign"),
		)
	default:
		span.RecordError(err)
		report := core.DeletionReport{
			Status:   core.DeletionFailedBeforeStart,
			Failures: []core.OperationFailure{{Phase: PhaseValidate, Path: core.CampaignPath(campaignID), Err: err}},
		}
		return report, report.Err()
	}

	report := s.coordinator.DeleteCampaign(ctx, campaignID, characterIDs)
	if err := report.Err(); err != nil {
		span.RecordError(err)
		return report, err
	}
	return report, nil
}
