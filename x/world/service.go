// Package world manages the locations of a shared world.
package world

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

var tracer = otel.Tracer("world")

type service struct {
	gateway core.MutationGateway
}

// NewService creates a new world service
func NewService(gateway core.MutationGateway) core.WorldService {
	return &service{gateway: gateway}
}

func requireIDs(worldID, locationID string) error {
	if worldID == "" {
		return core.NewErrorValidation("world id is required")
	}
	if locationID == "" {
		return core.NewErrorValidation("location id is required")
	}
	return nil
}

// UpsertLocation implements core.WorldService. An empty locationID creates a new location.
// Every write stamps the location with the server time.
func (s *service) UpsertLocation(ctx context.Context, worldID, locationID string, location core.Location) (string, error) {
	ctx, span := tracer.Start(ctx, "World.Service.UpsertLocation")
	defer span.End()

	if worldID == "" {
		return "", core.NewErrorValidation("world id is required")
	}
	if location.Name == "" {
		return "", core.NewErrorValidation("location name is required")
	}

	stored := core.LocationToStored(location)

	if locationID == "" {
		id, err := s.gateway.Add(ctx, core.LocationsPath(worldID), stored)
		if err != nil {
			span.RecordError(err)
			return "", err
		}
		span.SetAttributes(attribute.String("path", core.LocationPath(worldID, id)))
		return id, nil
	}

	span.SetAttributes(attribute.String("path", core.LocationPath(worldID, locationID)))
	err := s.gateway.Set(ctx, core.LocationPath(worldID, locationID), stored)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	return locationID, nil
}

// UpdatePrivateDetails implements core.WorldService
func (s *service) UpdatePrivateDetails(ctx context.Context, worldID, locationID string, details core.LocationPrivateDetails) error {
	ctx, span := tracer.Start(ctx, "World.Service.UpdatePrivateDetails")
	defer span.End()

	if err := requireIDs(worldID, locationID); err != nil {
		return err
	}

	err := s.gateway.Set(ctx, core.LocationPrivateDetailsPath(worldID, locationID), details)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// UpdatePublicNotes implements core.WorldService
func (s *service) UpdatePublicNotes(ctx context.Context, worldID, locationID string, notes core.LocationPublicNotes) error {
	ctx, span := tracer.Start(ctx, "World.Service.UpdatePublicNotes")
	defer span.End()

	if err := requireIDs(worldID, locationID); err != nil {
		return err
	}

	err := s.gateway.Set(ctx, core.LocationPublicNotesPath(worldID, locationID), notes)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// DeleteLocation implements core.WorldService. The sub-documents go first; the location itself
// is only deleted once nothing it owns is left.
func (s *service) DeleteLocation(ctx context.Context, worldID, locationID string) error {
	ctx, span := tracer.Start(ctx, "World.Service.DeleteLocation")
	defer span.End()

	if err := requireIDs(worldID, locationID); err != nil {
		return err
	}

	paths := []string{
		core.LocationPrivateDetailsPath(worldID, locationID),
		core.LocationPublicNotesPath(worldID, locationID),
		core.LocationPath(worldID, locationID),
	}
	for _, path := range paths {
		err := s.gateway.Delete(ctx, path)
		if err != nil {
			span.RecordError(err)
			return err
		}
	}

	return nil
}
