// Package gamelog records resolved rolls in campaign and character game logs.
package gamelog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

var tracer = otel.Tracer("gamelog")

type service struct {
	store   core.RemoteStore
	gateway core.MutationGateway
}

// NewService creates a new game log service
func NewService(store core.RemoteStore, gateway core.MutationGateway) core.GameLogService {
	return &service{
		store:   store,
		gateway: gateway,
	}
}

// Log implements core.GameLogService. A roll made inside a campaign goes to the campaign log,
// otherwise to the character log. The stored timestamp is the server time of the write.
func (s *service) Log(ctx context.Context, campaignID, characterID string, roll core.Roll) (string, error) {
	ctx, span := tracer.Start(ctx, "GameLog.Service.Log")
	defer span.End()

	var collection string
	switch {
	case campaignID != "":
		collection = core.CampaignGameLogPath(campaignID)
	case characterID != "":
		collection = core.CharacterGameLogPath(characterID)
	default:
		return "", core.NewErrorValidation("a campaign or character id is required")
	}
	if roll.Kind == "" {
		return "", core.NewErrorValidation("roll kind is required")
	}
	span.SetAttributes(attribute.String("collection", collection))

	stored := core.RollToStored(roll)
	stored.Timestamp = core.ServerTimestamp()

	id, err := s.gateway.Add(ctx, collection, stored)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(
			ctx, fmt.Sprintf("failed to log %s roll to %s: %v", roll.Kind, collection, err),
			slog.String("module", "gamelog"),
		)
		return "", err
	}

	return id, nil
}

// List implements core.GameLogService. Entries are ordered oldest first.
func (s *service) List(ctx context.Context, collectionPath string) ([]core.GameLogEntry, error) {
	ctx, span := tracer.Start(ctx, "GameLog.Service.List")
	defer span.End()

	info, err := core.ParsePath(collectionPath)
	if err != nil {
		return nil, err
	}
	if !info.Collection || (info.Kind != core.KindCampaignLog && info.Kind != core.KindCharacterLog) {
		return nil, core.NewErrorValidation("not a game log collection: " + collectionPath)
	}

	docs, err := s.store.List(ctx, info.Path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	entries := make([]core.GameLogEntry, 0, len(docs))
	for _, doc := range docs {
		entity, err := core.NormalizeDocument(doc)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		entry, ok := entity.Value.(core.GameLogEntry)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return entries, nil
}
