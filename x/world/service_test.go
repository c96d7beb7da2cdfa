package world

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/internal/testutil"
	"github.com/ironfellow/companion/x/mutation"
	"github.com/ironfellow/companion/x/store"
)

func TestLocationLifecycle(t *testing.T) {
	memory := store.NewMemoryStore()
	service := NewService(mutation.NewGateway(memory))
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	id, err := service.UpsertLocation(ctx, "w1", "", core.Location{Name: "Bleakhold", SharedWithPlayers: true})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	doc, err := memory.Get(ctx, core.LocationPath("w1", id))
	require.NoError(t, err)
	entity, err := core.NormalizeDocument(doc)
	require.NoError(t, err)
	location, ok := entity.Value.(core.Location)
	require.True(t, ok)
	assert.Equal(t, "Bleakhold", location.Name)
	assert.True(t, location.SharedWithPlayers)
	assert.False(t, location.UpdatedDate.Before(before))

	same, err := service.UpsertLocation(ctx, "w1", id, core.Location{Name: "Bleakhold Keep"})
	require.NoError(t, err)
	assert.Equal(t, id, same)

	require.NoError(t, service.UpdatePrivateDetails(ctx, "w1", id, core.LocationPrivateDetails{GMNotes: "the cellar"}))
	require.NoError(t, service.UpdatePublicNotes(ctx, "w1", id, core.LocationPublicNotes{Notes: "cold"}))

	locations, err := memory.List(ctx, core.LocationsPath("w1"))
	require.NoError(t, err)
	assert.Len(t, locations, 1)

	private, err := memory.Get(ctx, core.LocationPrivateDetailsPath("w1", id))
	require.NoError(t, err)
	assert.JSONEq(t, `{"gmNotes":"the cellar"}`, string(private.Data))

	require.NoError(t, service.DeleteLocation(ctx, "w1", id))
	for _, path := range []string{
		core.LocationPath("w1", id),
		core.LocationPrivateDetailsPath("w1", id),
		core.LocationPublicNotesPath("w1", id),
	} {
		_, err := memory.Get(ctx, path)
		assert.True(t, errors.Is(err, core.ErrorNotFound{}), path)
	}
}

func TestDeleteLocationKeepsLocationOnFailure(t *testing.T) {
	memory := store.NewMemoryStore()
	faulty := testutil.NewFaultyStore(memory)
	service := NewService(mutation.NewGateway(faulty))
	ctx := context.Background()

	id, err := service.UpsertLocation(ctx, "w1", "", core.Location{Name: "Bleakhold"})
	require.NoError(t, err)

	faulty.FailNext("delete", core.LocationPublicNotesPath("w1", id), core.NewErrorPermissionDenied())

	err = service.DeleteLocation(ctx, "w1", id)
	assert.True(t, errors.Is(err, core.ErrorPermissionDenied{}))

	_, err = memory.Get(ctx, core.LocationPath("w1", id))
	assert.NoError(t, err)
}

func TestLocationValidation(t *testing.T) {
	service := NewService(mutation.NewGateway(store.NewMemoryStore()))
	ctx := context.Background()

	_, err := service.UpsertLocation(ctx, "", "", core.Location{Name: "x"})
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
	_, err = service.UpsertLocation(ctx, "w1", "", core.Location{})
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
	assert.True(t, errors.Is(service.UpdatePrivateDetails(ctx, "w1", "", core.LocationPrivateDetails{}), core.ErrorValidation{}))
	assert.True(t, errors.Is(service.UpdatePublicNotes(ctx, "", "l1", core.LocationPublicNotes{}), core.ErrorValidation{}))
	assert.True(t, errors.Is(service.DeleteLocation(ctx, "w1", ""), core.ErrorValidation{}))
}
