package character

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/internal/testutil"
	"github.com/ironfellow/companion/x/campaign"
	"github.com/ironfellow/companion/x/mutation"
	"github.com/ironfellow/companion/x/store"
)

func newService(remote core.RemoteStore) core.CharacterService {
	gateway := mutation.NewGateway(remote)
	config := core.DefaultConfig()
	return NewService(remote, gateway, campaign.NewService(remote, gateway, config), config)
}

func fullStats() core.StatsMap {
	return core.StatsMap{
		core.StatEdge:   1,
		core.StatHeart:  2,
		core.StatIron:   3,
		core.StatShadow: 1,
		core.StatWits:   2,
	}
}

func seed(t *testing.T, memory *store.MemoryStore, docs [][2]string) {
	t.Helper()
	for _, doc := range docs {
		require.NoError(t, memory.Set(context.Background(), doc[0], json.RawMessage(doc[1])))
	}
}

func TestCreate(t *testing.T) {
	memory := store.NewMemoryStore()
	service := newService(memory)

	created, err := service.Create(context.Background(), core.Character{
		UID:        "u1",
		Name:       "Kira",
		Stats:      fullStats(),
		CampaignID: "ignored",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, MaxMeter, created.Health)
	assert.Equal(t, StartingMomentum, created.Momentum)
	assert.Equal(t, "starforged", created.GameSystem)
	assert.Empty(t, created.CampaignID)

	character, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, character)
}

func TestCreateValidation(t *testing.T) {
	service := newService(store.NewMemoryStore())

	missing := fullStats()
	delete(missing, core.StatWits)

	outOfRange := fullStats()
	outOfRange[core.StatIron] = 9

	unknown := fullStats()
	unknown["luck"] = 1

	testCases := []struct {
		name      string
		character core.Character
	}{
		{"no name", core.Character{UID: "u1", Stats: fullStats()}},
		{"no owner", core.Character{Name: "Kira", Stats: fullStats()}},
		{"missing stat", core.Character{UID: "u1", Name: "Kira", Stats: missing}},
		{"stat out of range", core.Character{UID: "u1", Name: "Kira", Stats: outOfRange}},
		{"unknown stat", core.Character{UID: "u1", Name: "Kira", Stats: unknown}},
		{"unknown game system", core.Character{UID: "u1", Name: "Kira", Stats: fullStats(), GameSystem: "dnd"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tc.character)
			assert.True(t, errors.Is(err, core.ErrorValidation{}), "got %v", err)
		})
	}
}

func TestUpdateStatAndMeter(t *testing.T) {
	memory := store.NewMemoryStore()
	seed(t, memory, [][2]string{
		{"/characters/ch1", `{"uid":"u1","name":"Kira","stats":{"iron":1},"health":5,"supply":5,"momentum":2}`},
	})
	service := newService(memory)
	ctx := context.Background()

	assert.NoError(t, service.UpdateStat(ctx, "ch1", core.StatIron, 3))
	assert.NoError(t, service.UpdateMeter(ctx, "ch1", core.MeterHealth, 2))
	assert.NoError(t, service.UpdateMeter(ctx, "ch1", core.MeterMomentum, -6))
	assert.NoError(t, service.UpdateMeter(ctx, "ch1", core.MeterSupply, 1))

	character, err := service.Get(ctx, "ch1")
	require.NoError(t, err)
	assert.Equal(t, 3, character.Stats[core.StatIron])
	assert.Equal(t, 2, character.Health)
	assert.Equal(t, -6, character.Momentum)
	assert.Equal(t, 1, character.Supply)

	err = service.UpdateMeter(ctx, "ch1", core.MeterMomentum, 11)
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
	err = service.UpdateMeter(ctx, "ch1", core.MeterSpirit, -1)
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
	err = service.UpdateMeter(ctx, "ch1", "luck", 1)
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
	err = service.UpdateStat(ctx, "ch1", core.StatWits, 6)
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
	err = service.UpdateStat(ctx, "", core.StatWits, 1)
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
}

func TestSupplyGoesToCampaign(t *testing.T) {
	memory := store.NewMemoryStore()
	seed(t, memory, [][2]string{
		{"/campaigns/c1", `{"name":"Iron Vale","gmIds":[],"characters":[{"uid":"u1","characterId":"ch1"}],"supply":5}`},
		{"/characters/ch1", `{"uid":"u1","name":"Kira","campaignId":"c1","supply":5}`},
	})
	service := newService(memory)

	require.NoError(t, service.UpdateMeter(context.Background(), "ch1", core.MeterSupply, 2))

	doc, err := memory.Get(context.Background(), "/campaigns/c1")
	require.NoError(t, err)
	assert.Contains(t, string(doc.Data), `"supply":2`)

	character, err := service.Get(context.Background(), "ch1")
	require.NoError(t, err)
	assert.Equal(t, 5, character.Supply)
}

func TestJoinAndLeaveCampaign(t *testing.T) {
	memory := store.NewMemoryStore()
	seed(t, memory, [][2]string{
		{"/campaigns/c1", `{"name":"Iron Vale","gmIds":["gm"],"characters":[],"supply":5}`},
		{"/characters/ch1", `{"uid":"u1","name":"Kira"}`},
	})
	gateway := mutation.NewGateway(memory)
	campaigns := campaign.NewService(memory, gateway, core.DefaultConfig())
	service := NewService(memory, gateway, campaigns, core.DefaultConfig())
	ctx := context.Background()

	require.NoError(t, service.JoinCampaign(ctx, "ch1", "c1"))
	// joining twice changes nothing
	require.NoError(t, service.JoinCampaign(ctx, "ch1", "c1"))

	joined, err := campaigns.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []core.CampaignCharacter{{UID: "u1", CharacterID: "ch1"}}, joined.Characters)

	character, err := service.Get(ctx, "ch1")
	require.NoError(t, err)
	assert.Equal(t, "c1", character.CampaignID)

	err = service.JoinCampaign(ctx, "ch1", "c2")
	assert.True(t, errors.Is(err, core.ErrorValidation{}))

	require.NoError(t, service.LeaveCampaign(ctx, "ch1"))

	left, err := campaigns.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, left.Characters)

	character, err = service.Get(ctx, "ch1")
	require.NoError(t, err)
	assert.Empty(t, character.CampaignID)

	// leaving without a campaign is a no-op
	assert.NoError(t, service.LeaveCampaign(ctx, "ch1"))
}

func TestJoinCampaignRollsBack(t *testing.T) {
	memory := store.NewMemoryStore()
	seed(t, memory, [][2]string{
		{"/campaigns/c1", `{"name":"Iron Vale","gmIds":["gm"],"characters":[{"uid":"u2","characterId":"ch2"}],"supply":5}`},
		{"/characters/ch1", `{"uid":"u1","name":"Kira"}`},
	})
	faulty := testutil.NewFaultyStore(memory)
	faulty.FailNext("patch", "/characters/ch1", core.NewErrorPermissionDenied())

	service := newService(faulty)

	err := service.JoinCampaign(context.Background(), "ch1", "c1")
	assert.True(t, errors.Is(err, core.ErrorPermissionDenied{}))

	doc, err := memory.Get(context.Background(), "/campaigns/c1")
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(doc.Data, &stored))
	assert.Equal(t, []any{map[string]any{"uid": "u2", "characterId": "ch2"}}, stored["characters"])

	assert.Equal(t, []string{
		"get /characters/ch1",
		"get /campaigns/c1",
		"patch /campaigns/c1",
		"patch /characters/ch1",
		"patch /campaigns/c1",
	}, faulty.Calls())
}

// barrierCampaigns holds every Get until all expected callers have read the campaign.
type barrierCampaigns struct {
	core.CampaignService
	arrived sync.WaitGroup
}

func (b *barrierCampaigns) Get(ctx context.Context, campaignID string) (core.Campaign, error) {
	campaign, err := b.CampaignService.Get(ctx, campaignID)
	b.arrived.Done()
	b.arrived.Wait()
	return campaign, err
}

func TestConcurrentJoinsKeepEveryMember(t *testing.T) {
	memory := store.NewMemoryStore()
	seed(t, memory, [][2]string{
		{"/campaigns/c1", `{"name":"Iron Vale","gmIds":["gm"],"characters":[],"supply":5}`},
		{"/characters/ch1", `{"uid":"u1","name":"Kira"}`},
		{"/characters/ch2", `{"uid":"u2","name":"Arn"}`},
	})
	gateway := mutation.NewGateway(memory)
	config := core.DefaultConfig()
	campaigns := campaign.NewService(memory, gateway, config)
	barrier := &barrierCampaigns{CampaignService: campaigns}
	barrier.arrived.Add(2)
	service := NewService(memory, gateway, barrier, config)
	ctx := context.Background()

	var g errgroup.Group
	for _, characterID := range []string{"ch1", "ch2"} {
		g.Go(func() error {
			return service.JoinCampaign(ctx, characterID, "c1")
		})
	}
	require.NoError(t, g.Wait())

	joined, err := campaigns.Get(ctx, "c1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ch1", "ch2"}, joined.CharacterIDs())

	report, err := campaigns.Delete(ctx, "c1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ch1", "ch2"}, report.Detached)

	for _, characterID := range []string{"ch1", "ch2"} {
		character, err := service.Get(ctx, characterID)
		require.NoError(t, err)
		assert.Empty(t, character.CampaignID, characterID)
	}
}

func TestLeaveDeletedCampaign(t *testing.T) {
	memory := store.NewMemoryStore()
	seed(t, memory, [][2]string{
		{"/characters/ch1", `{"uid":"u1","name":"Kira","campaignId":"gone"}`},
	})
	service := newService(memory)

	require.NoError(t, service.LeaveCampaign(context.Background(), "ch1"))

	character, err := service.Get(context.Background(), "ch1")
	require.NoError(t, err)
	assert.Empty(t, character.CampaignID)
}

func TestDelete(t *testing.T) {
	memory := store.NewMemoryStore()
	seed(t, memory, [][2]string{
		{"/campaigns/c1", `{"name":"Iron Vale","gmIds":[],"characters":[{"uid":"u1","characterId":"ch1"},{"uid":"u2","characterId":"ch2"}],"supply":5}`},
		{"/characters/ch1", `{"uid":"u1","name":"Kira","campaignId":"c1"}`},
		{"/characters/ch1/assets/a1", `{"id":"starforged/assets/path/empath","enabledAbilities":{"0":true}}`},
		{"/characters/ch1/notes/n1", `{"title":"journal"}`},
		{"/characters/ch1/tracks/t1", `{"type":"vow","label":"x","value":4,"max":40,"status":"active"}`},
		{"/characters/ch1/game-log/l1", `{"type":"stat"}`},
		{"/characters/ch2", `{"uid":"u2","name":"Arn","campaignId":"c1"}`},
	})
	faulty := testutil.NewFaultyStore(memory)
	faulty.FailNext("delete", "/characters/ch1/notes/n1", core.NewErrorNetworkFailure())

	service := newService(faulty)

	report, err := service.Delete(context.Background(), "ch1")
	assert.Equal(t, core.DeletionPartiallySucceeded, report.Status)
	assert.True(t, core.IsRetryable(err))
	assert.Equal(t, []string{"c1"}, report.Detached)
	assert.Equal(t, []string{
		"/characters/ch1",
		"/characters/ch1/assets/a1",
		"/characters/ch1/game-log/l1",
		"/characters/ch1/tracks/t1",
	}, report.Deleted)
	if assert.Len(t, report.Failures, 1) {
		assert.Equal(t, PhaseDelete, report.Failures[0].Phase)
	}

	doc, err := memory.Get(context.Background(), "/campaigns/c1")
	require.NoError(t, err)
	assert.NotContains(t, string(doc.Data), `"ch1"`)
	assert.Contains(t, string(doc.Data), `"ch2"`)

	// repeating the deletion sweeps what is left
	report, err = service.Delete(context.Background(), "ch1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"/characters/ch1", "/characters/ch1/notes/n1"}, report.Deleted)

	_, err = memory.Get(context.Background(), "/characters/ch2")
	assert.NoError(t, err)
}

func TestDeleteFailsBeforeStartWhenCampaignUnreachable(t *testing.T) {
	memory := store.NewMemoryStore()
	seed(t, memory, [][2]string{
		{"/campaigns/c1", `{"name":"Iron Vale","characters":[{"uid":"u1","characterId":"ch1"}],"supply":5}`},
		{"/characters/ch1", `{"uid":"u1","name":"Kira","campaignId":"c1"}`},
	})
	faulty := testutil.NewFaultyStore(memory)
	faulty.FailNext("patch", "/campaigns/c1", core.NewErrorPermissionDenied())

	service := newService(faulty)

	report, err := service.Delete(context.Background(), "ch1")
	assert.Equal(t, core.DeletionFailedBeforeStart, report.Status)
	assert.True(t, errors.Is(err, core.ErrorPermissionDenied{}))
	assert.Empty(t, report.Deleted)

	_, err = memory.Get(context.Background(), "/characters/ch1")
	assert.NoError(t, err)
}
