package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/internal/cascade"
)

const (
	PhaseValidate = "validate"
	PhaseDetach   = "detach"
	PhaseList     = cascade.PhaseList
	PhaseDelete   = cascade.PhaseDelete
)

// Coordinator runs cascading campaign deletion: member characters are detached first, then
// the campaign document and every document of its owned collections are deleted.
type Coordinator struct {
	store   core.RemoteStore
	gateway core.MutationGateway
	config  core.Config
}

func NewCoordinator(store core.RemoteStore, gateway core.MutationGateway, config core.Config) *Coordinator {
	return &Coordinator{
		store:   store,
		gateway: gateway,
		config:  config,
	}
}

func ownedCollections(campaignID string) []string {
	return []string{
		core.CampaignNotesPath(campaignID),
		core.CampaignGameLogPath(campaignID),
		core.CampaignTracksPath(campaignID),
		core.CampaignSettingsCollectionPath(campaignID),
	}
}

func (c *Coordinator) group() *errgroup.Group {
	g := &errgroup.Group{}
	if c.config.MaxConcurrentDeletes > 0 {
		g.SetLimit(c.config.MaxConcurrentDeletes)
	}
	return g
}

// DeleteCampaign deletes campaignID and everything it owns, clearing the campaign reference of
// characterIDs. Sub-operations do not stop each other; the returned report is built once, after
// every sub-operation has finished.
func (c *Coordinator) DeleteCampaign(ctx context.Context, campaignID string, characterIDs []string) core.DeletionReport {
	ctx, span := tracer.Start(ctx, "Campaign.Coordinator.DeleteCampaign")
	defer span.End()

	span.SetAttributes(
		attribute.String("campaign", campaignID),
		attribute.Int("characters", len(characterIDs)),
	)

	if campaignID == "" {
		return core.DeletionReport{
			Status: core.DeletionFailedBeforeStart,
			Failures: []core.OperationFailure{{
				Phase: PhaseValidate,
				Err:   core.NewErrorValidation("campaign id is required"),
			}},
		}
	}
	if err := ctx.Err(); err != nil {
		return core.DeletionReport{
			Status:   core.DeletionFailedBeforeStart,
			Failures: []core.OperationFailure{{Phase: PhaseValidate, Path: core.CampaignPath(campaignID), Err: err}},
		}
	}

	detachErrs := make([]error, len(characterIDs))
	g := c.group()
	for i, characterID := range characterIDs {
		g.Go(func() error {
			detachErrs[i] = c.detach(ctx, campaignID, characterID)
			return nil
		})
	}
	g.Wait()

	report := core.DeletionReport{
		Detached: []string{},
		Deleted:  []string{},
	}
	for i, characterID := range characterIDs {
		if detachErrs[i] != nil {
			report.Failures = append(report.Failures, core.OperationFailure{
				Phase: PhaseDetach,
				Path:  core.CharacterPath(characterID),
				Err:   detachErrs[i],
			})
			continue
		}
		report.Detached = append(report.Detached, characterID)
	}

	if len(report.Failures) > 0 && c.config.StrictOrdering {
		// nothing is deleted, but detached characters stay detached
		report.Status = core.DeletionFailedBeforeStart
		if len(report.Detached) > 0 {
			report.Status = core.DeletionPartiallySucceeded
		}
		c.finish(ctx, campaignID, report)
		return report
	}

	deleted, failures := c.deleteOwned(ctx, campaignID)
	report.Deleted = deleted
	report.Failures = append(report.Failures, failures...)

	if len(report.Failures) > 0 {
		report.Status = core.DeletionPartiallySucceeded
	} else {
		report.Status = core.DeletionSucceeded
	}

	c.finish(ctx, campaignID, report)
	return report
}

func (c *Coordinator) finish(ctx context.Context, campaignID string, report core.DeletionReport) {
	if report.Status == core.DeletionSucceeded {
		slog.InfoContext(
			ctx, fmt.Sprintf("campaign %s deleted (%d documents, %d characters detached)", campaignID, len(report.Deleted), len(report.Detached)),
			slog.String("module", "campaign"),
		)
		return
	}
	slog.ErrorContext(
		ctx, fmt.Sprintf("campaign %s deletion %s: %v", campaignID, report.Status, report.Err()),
		slog.String("module", "campaign"),
	)
}

// detach clears the campaign reference of one character, retrying transient failures. A
// character that no longer exists holds no reference and counts as detached.
func (c *Coordinator) detach(ctx context.Context, campaignID, characterID string) error {
	path := core.CharacterPath(characterID)
	attempts := max(c.config.DetachAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = c.gateway.Write(ctx, path, core.UnsetField("campaignId"))
		if err == nil || errors.Is(err, core.ErrorNotFound{}) {
			return nil
		}
		if !core.IsRetryable(err) || attempt == attempts {
			break
		}

		slog.WarnContext(
			ctx, fmt.Sprintf("detaching %s from campaign %s failed (attempt %d/%d): %v", characterID, campaignID, attempt, attempts, err),
			slog.String("module", "campaign"),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.config.RetryBackoff * time.Duration(attempt)):
		}
	}

	return err
}

func (c *Coordinator) deleteOwned(ctx context.Context, campaignID string) ([]string, []core.OperationFailure) {
	return cascade.Sweep(ctx, c.store, c.gateway, core.CampaignPath(campaignID), ownedCollections(campaignID), c.config.MaxConcurrentDeletes)
}
