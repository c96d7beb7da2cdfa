package campaign

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/core/mock"
	"github.com/ironfellow/companion/x/mutation"
	"github.com/ironfellow/companion/x/store"
)

func TestCreateAndGet(t *testing.T) {
	memory := store.NewMemoryStore()
	service := NewService(memory, mutation.NewGateway(memory), testConfig())

	created, err := service.Create(context.Background(), "Iron Vale", "gm1")
	if !assert.NoError(t, err) {
		return
	}
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, MaxSupply, created.Supply)

	campaign, err := service.Get(context.Background(), created.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, created.ID, campaign.ID)
		assert.Equal(t, "Iron Vale", campaign.Name)
		assert.Equal(t, []string{"gm1"}, campaign.GMIDs)
		assert.Empty(t, campaign.Characters)
		assert.Equal(t, created.LastUpdated, campaign.LastUpdated)
	}

	_, err = service.Create(context.Background(), "", "gm1")
	assert.True(t, errors.Is(err, core.ErrorValidation{}))

	_, err = service.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, core.ErrorNotFound{}))
}

func TestUpdateSupplyBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := mock_core.NewMockMutationGateway(ctrl)
	mockGateway.EXPECT().Write(gomock.Any(), "/campaigns/c1", core.SetField("supply", 0)).Return(nil)
	mockGateway.EXPECT().Write(gomock.Any(), "/campaigns/c1", core.SetField("supply", 5)).Return(nil)

	service := NewService(mock_core.NewMockRemoteStore(ctrl), mockGateway, testConfig())

	assert.NoError(t, service.UpdateSupply(context.Background(), "c1", 0))
	assert.NoError(t, service.UpdateSupply(context.Background(), "c1", 5))

	err := service.UpdateSupply(context.Background(), "c1", 6)
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
	err = service.UpdateSupply(context.Background(), "c1", -1)
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
}

func TestAddGM(t *testing.T) {
	memory := store.NewMemoryStore()
	assert.NoError(t, memory.Set(context.Background(), "/campaigns/c1", json.RawMessage(`{"name":"Iron Vale","gmIds":["gm1"],"characters":[],"supply":5}`)))

	service := NewService(memory, mutation.NewGateway(memory), testConfig())

	assert.NoError(t, service.AddGM(context.Background(), "c1", "gm2"))
	assert.NoError(t, service.AddGM(context.Background(), "c1", "gm2"))

	campaign, err := service.Get(context.Background(), "c1")
	if assert.NoError(t, err) {
		assert.Equal(t, []string{"gm1", "gm2"}, campaign.GMIDs)
	}

	err = service.AddGM(context.Background(), "c1", "")
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
}

func TestUpdateSettings(t *testing.T) {
	memory := store.NewMemoryStore()
	service := NewService(memory, mutation.NewGateway(memory), testConfig())

	err := service.UpdateSettings(context.Background(), "c1", core.CampaignSettings{HiddenOracleIDs: []string{"oracle-1"}})
	assert.NoError(t, err)

	doc, err := memory.Get(context.Background(), "/campaigns/c1/settings/settings")
	if assert.NoError(t, err) {
		assert.JSONEq(t, `{"hiddenMoveIds":[],"hiddenOracleIds":["oracle-1"]}`, string(doc.Data))
	}
}

func TestDeleteUnreadableCampaignFailsBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Get(gomock.Any(), "/campaigns/c1").Return(core.Document{}, core.NewErrorPermissionDenied())

	service := NewService(mockStore, mock_core.NewMockMutationGateway(ctrl), testConfig())

	report, err := service.Delete(context.Background(), "c1")
	assert.Equal(t, core.DeletionFailedBeforeStart, report.Status)
	assert.True(t, errors.Is(err, core.ErrorPermissionDenied{}))
}
