package track

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/core/mock"
)

const trackPath = "/campaigns/c1/tracks/t1"

func TestCreateDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := mock_core.NewMockMutationGateway(ctrl)
	mockGateway.EXPECT().
		Add(gomock.Any(), "/campaigns/c1/tracks", core.ProgressTrack{
			Type:       core.TrackVow,
			Label:      "Avenge my kin",
			Difficulty: core.DifficultyDangerous,
			Max:        DefaultMax,
			Status:     core.TrackStatusActive,
		}).
		Return("t1", nil)

	service := NewService(mockGateway, mock_core.NewMockGameLogService(ctrl), nil)

	id, err := service.Create(context.Background(), "/campaigns/c1/tracks", core.ProgressTrack{
		Type:       core.TrackVow,
		Label:      "Avenge my kin",
		Difficulty: core.DifficultyDangerous,
	})
	assert.NoError(t, err)
	assert.Equal(t, "t1", id)
}

func TestCreateRejectsWrongCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mock_core.NewMockMutationGateway(ctrl), mock_core.NewMockGameLogService(ctrl), nil)

	_, err := service.Create(context.Background(), "/campaigns/c1/notes", core.ProgressTrack{Type: core.TrackVow})
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
}

func TestMarkAppliesOptimistically(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	track := core.ProgressTrack{Type: core.TrackVow, Difficulty: core.DifficultyFormidable, Value: 8, Max: 40, Status: core.TrackStatusActive}
	marked := track
	marked.Value = 12
	marked.ID = "t1"

	mockLocal := mock_core.NewMockLocalStore(ctrl)
	mockLocal.EXPECT().Put(core.Entity{Path: trackPath, ID: "t1", Kind: core.KindCampaignTrack, Value: marked})

	mockGateway := mock_core.NewMockMutationGateway(ctrl)
	mockGateway.EXPECT().
		WriteOptimistic(gomock.Any(), trackPath, core.SetField("value", 12), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, path string, patch core.Patch, apply func(), revert func()) error {
			apply()
			return nil
		})

	service := NewService(mockGateway, mock_core.NewMockGameLogService(ctrl), mockLocal)

	next, change, err := service.Mark(context.Background(), trackPath, track)
	assert.NoError(t, err)
	assert.Equal(t, core.TrackChanged, change)
	assert.Equal(t, 12, next.Value)
}

func TestMarkRevertsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	track := core.ProgressTrack{ID: "t1", Type: core.TrackFray, Value: 4, Max: 40, Status: core.TrackStatusActive}
	cleared := track
	cleared.Value = 3

	mockLocal := mock_core.NewMockLocalStore(ctrl)
	gomock.InOrder(
		mockLocal.EXPECT().Put(core.Entity{Path: trackPath, ID: "t1", Kind: core.KindCampaignTrack, Value: cleared}),
		mockLocal.EXPECT().Lookup(trackPath).Return(core.Entity{Path: trackPath, ID: "t1", Kind: core.KindCampaignTrack, Value: cleared}, true),
		mockLocal.EXPECT().Put(core.Entity{Path: trackPath, ID: "t1", Kind: core.KindCampaignTrack, Value: track}),
	)

	mockGateway := mock_core.NewMockMutationGateway(ctrl)
	mockGateway.EXPECT().
		WriteOptimistic(gomock.Any(), trackPath, core.SetField("value", 3), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, path string, patch core.Patch, apply func(), revert func()) error {
			apply()
			revert()
			return core.NewErrorPermissionDenied()
		})

	service := NewService(mockGateway, mock_core.NewMockGameLogService(ctrl), mockLocal)

	current, _, err := service.Clear(context.Background(), trackPath, track)
	assert.True(t, errors.Is(err, core.ErrorPermissionDenied{}))
	assert.Equal(t, track, current)
}

func TestFailedMarkKeepsNewerSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	track := core.ProgressTrack{ID: "t1", Type: core.TrackVow, Difficulty: core.DifficultyTroublesome, Value: 4, Max: 40, Status: core.TrackStatusActive}
	marked := track
	marked.Value = 16
	remote := track
	remote.Value = 20

	mockLocal := mock_core.NewMockLocalStore(ctrl)
	gomock.InOrder(
		mockLocal.EXPECT().Put(core.Entity{Path: trackPath, ID: "t1", Kind: core.KindCampaignTrack, Value: marked}),
		mockLocal.EXPECT().Lookup(trackPath).Return(core.Entity{Path: trackPath, ID: "t1", Kind: core.KindCampaignTrack, Value: remote}, true),
	)

	mockGateway := mock_core.NewMockMutationGateway(ctrl)
	mockGateway.EXPECT().
		WriteOptimistic(gomock.Any(), trackPath, core.SetField("value", 16), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, path string, patch core.Patch, apply func(), revert func()) error {
			apply()
			// another device wrote the track before the failure came back
			revert()
			return core.NewErrorNetworkFailure()
		})

	service := NewService(mockGateway, mock_core.NewMockGameLogService(ctrl), mockLocal)

	current, _, err := service.Mark(context.Background(), trackPath, track)
	assert.True(t, core.IsRetryable(err))
	assert.Equal(t, track, current)
}

func TestMarkAtMaximumDoesNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no gateway expectations: a clamped no-op never reaches the store
	service := NewService(mock_core.NewMockMutationGateway(ctrl), mock_core.NewMockGameLogService(ctrl), nil)

	full := core.ProgressTrack{Type: core.TrackVow, Value: 40, Max: 40}
	current, change, err := service.Mark(context.Background(), trackPath, full)
	assert.NoError(t, err)
	assert.Equal(t, core.TrackAtMaximum, change)
	assert.Equal(t, full, current)

	empty := core.ProgressTrack{Type: core.TrackVow, Value: 0, Max: 40}
	current, change, err = service.Clear(context.Background(), trackPath, empty)
	assert.NoError(t, err)
	assert.Equal(t, core.TrackAtZero, change)
	assert.Equal(t, empty, current)
}

func TestCompleteAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := mock_core.NewMockMutationGateway(ctrl)
	mockGateway.EXPECT().Write(gomock.Any(), "/characters/ch1/tracks/t2", core.SetField("status", core.TrackStatusCompleted)).Return(nil)
	mockGateway.EXPECT().Delete(gomock.Any(), "/characters/ch1/tracks/t2").Return(nil)

	service := NewService(mockGateway, mock_core.NewMockGameLogService(ctrl), nil)

	assert.NoError(t, service.Complete(context.Background(), "/characters/ch1/tracks/t2"))
	assert.NoError(t, service.Delete(context.Background(), "/characters/ch1/tracks/t2"))
	assert.Error(t, service.Delete(context.Background(), "/characters/ch1"))
}

func TestRollProgressLogsRoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var logged core.Roll
	mockGameLog := mock_core.NewMockGameLogService(ctrl)
	mockGameLog.EXPECT().
		Log(gomock.Any(), "c1", "ch1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, campaignID, characterID string, roll core.Roll) (string, error) {
			logged = roll
			return "l1", nil
		})

	service := NewService(mock_core.NewMockMutationGateway(ctrl), mockGameLog, nil)

	roll, err := service.RollProgress(context.Background(), core.ProgressRollRequest{
		CampaignID:  "c1",
		CharacterID: "ch1",
		UID:         "u1",
		GameSystem:  "ironsworn",
		TrackType:   core.TrackJourney,
		Label:       "To the Havens",
		Ticks:       37,
		Seed:        3,
	})
	assert.NoError(t, err)
	assert.Equal(t, core.RollKindTrackProgress, roll.Kind)
	assert.Equal(t, 9, roll.TrackProgress)
	assert.Equal(t, "ironsworn/moves/adventure/reach_your_destination", roll.MoveName)
	assert.Equal(t, "u1", roll.UID)
	assert.Equal(t, roll, logged)
}

func TestRollProgressWithoutOwnerIsNotLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mock_core.NewMockMutationGateway(ctrl), mock_core.NewMockGameLogService(ctrl), nil)

	roll, err := service.RollProgress(context.Background(), core.ProgressRollRequest{
		TrackType: core.TrackBondProgress,
		Ticks:     12,
		Seed:      1,
	})
	assert.NoError(t, err)
	assert.Equal(t, "starforged/moves/connection/forge_a_bond", roll.MoveName)
	assert.Equal(t, 3, roll.TrackProgress)
}
