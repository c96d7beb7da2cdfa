package track

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/x/gamesystem"
	"github.com/ironfellow/companion/x/resolution"
)

var tracer = otel.Tracer("track")

type service struct {
	gateway core.MutationGateway
	gamelog core.GameLogService
	local   core.LocalStore
}

// NewService creates a track service. local may be nil when no local state mirrors the tracks.
func NewService(gateway core.MutationGateway, gamelog core.GameLogService, local core.LocalStore) core.TrackService {
	return &service{
		gateway: gateway,
		gamelog: gamelog,
		local:   local,
	}
}

func trackCollection(path string) error {
	info, err := core.ParsePath(path)
	if err != nil {
		return err
	}
	if !info.Collection || (info.Kind != core.KindCampaignTrack && info.Kind != core.KindCharacterTrack) {
		return core.NewErrorValidation("not a track collection: " + path)
	}
	return nil
}

func trackDocument(path string) error {
	info, err := core.ParsePath(path)
	if err != nil {
		return err
	}
	if info.Collection || (info.Kind != core.KindCampaignTrack && info.Kind != core.KindCharacterTrack) {
		return core.NewErrorValidation("not a track document: " + path)
	}
	return nil
}

// Create implements core.TrackService
func (s *service) Create(ctx context.Context, collectionPath string, track core.ProgressTrack) (string, error) {
	ctx, span := tracer.Start(ctx, "Track.Service.Create")
	defer span.End()

	if err := trackCollection(collectionPath); err != nil {
		return "", err
	}

	if track.Max == 0 {
		track.Max = DefaultMax
	}
	if track.Status == "" {
		track.Status = core.TrackStatusActive
	}
	if err := Validate(track); err != nil {
		return "", err
	}

	id, err := s.gateway.Add(ctx, collectionPath, track)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	span.SetAttributes(attribute.String("path", core.JoinPath(collectionPath, id)))
	return id, nil
}

// Mark implements core.TrackService
func (s *service) Mark(ctx context.Context, path string, track core.ProgressTrack) (core.ProgressTrack, core.TrackChange, error) {
	ctx, span := tracer.Start(ctx, "Track.Service.Mark")
	defer span.End()

	return s.step(ctx, path, track, Increment)
}

// Clear implements core.TrackService
func (s *service) Clear(ctx context.Context, path string, track core.ProgressTrack) (core.ProgressTrack, core.TrackChange, error) {
	ctx, span := tracer.Start(ctx, "Track.Service.Clear")
	defer span.End()

	return s.step(ctx, path, track, Decrement)
}

func (s *service) step(
	ctx context.Context,
	path string,
	track core.ProgressTrack,
	move func(core.ProgressTrack) (core.ProgressTrack, core.TrackChange),
) (core.ProgressTrack, core.TrackChange, error) {

	if err := trackDocument(path); err != nil {
		return track, core.TrackChanged, err
	}
	if err := Validate(track); err != nil {
		return track, core.TrackChanged, err
	}

	next, change := move(track)
	if change != core.TrackChanged {
		return track, change, nil
	}

	err := s.gateway.WriteOptimistic(
		ctx,
		path,
		core.SetField("value", next.Value),
		func() { s.put(path, next) },
		func() {
			if s.showing(path, next.Value) {
				s.put(path, track)
			}
		},
	)
	if err != nil {
		return track, change, err
	}

	return next, change, nil
}

// showing reports whether the local track at path still holds value. A newer snapshot that
// replaced the optimistic value is left alone.
func (s *service) showing(path string, value int) bool {
	if s.local == nil {
		return false
	}
	entity, ok := s.local.Lookup(path)
	if !ok {
		return false
	}
	current, ok := entity.Value.(core.ProgressTrack)
	return ok && current.Value == value
}

func (s *service) put(path string, track core.ProgressTrack) {
	if s.local == nil {
		return
	}
	info, err := core.ParsePath(path)
	if err != nil {
		return
	}
	track.ID = info.ID()
	s.local.Put(core.Entity{Path: info.Path, ID: info.ID(), Kind: info.Kind, Value: track})
}

// Complete implements core.TrackService
func (s *service) Complete(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Track.Service.Complete")
	defer span.End()

	if err := trackDocument(path); err != nil {
		return err
	}

	return s.gateway.Write(ctx, path, core.SetField("status", core.TrackStatusCompleted))
}

// Delete implements core.TrackService
func (s *service) Delete(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Track.Service.Delete")
	defer span.End()

	if err := trackDocument(path); err != nil {
		return err
	}

	return s.gateway.Delete(ctx, path)
}

// RollProgress implements core.TrackService
func (s *service) RollProgress(ctx context.Context, request core.ProgressRollRequest) (core.Roll, error) {
	ctx, span := tracer.Start(ctx, "Track.Service.RollProgress")
	defer span.End()

	system, err := gamesystem.Parse(request.GameSystem)
	if err != nil {
		return core.Roll{}, err
	}
	variant, err := gamesystem.Lookup(system)
	if err != nil {
		return core.Roll{}, err
	}
	moveID, err := variant.ProgressMove(request.TrackType)
	if err != nil {
		return core.Roll{}, err
	}

	seed := request.Seed
	if seed == 0 {
		seed, err = resolution.NewSeed()
		if err != nil {
			span.RecordError(err)
			return core.Roll{}, err
		}
	}

	result, err := resolution.RollProgress(resolution.ProgressRollRequest{Ticks: request.Ticks, Seed: seed})
	if err != nil {
		return core.Roll{}, core.NewErrorValidation(err.Error())
	}

	roll := resolution.ProgressRoll(result, request.TrackType, request.Label, moveID)
	roll.CharacterID = request.CharacterID
	roll.UID = request.UID

	slog.InfoContext(
		ctx, fmt.Sprintf("progress roll on %s %q: %d vs %d/%d (%s)", request.TrackType, request.Label, result.Score, result.Challenge1, result.Challenge2, result.Outcome),
		slog.String("module", "track"),
	)

	if request.CampaignID == "" && request.CharacterID == "" {
		return roll, nil
	}

	_, err = s.gamelog.Log(ctx, request.CampaignID, request.CharacterID, roll)
	if err != nil {
		span.RecordError(err)
		return roll, errors.Wrap(err, "failed to log progress roll")
	}

	return roll, nil
}
