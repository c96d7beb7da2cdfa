package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestApplyPatch(t *testing.T) {
	data := []byte(`{"name":"Kira","campaignId":"c1","stats":{"edge":2,"iron":3}}`)

	patched, err := ApplyPatch(data, Patch{
		Set:   map[string]any{"stats.iron": 4, "enabledAbilities.1": true},
		Unset: []string{"campaignId"},
	})
	if assert.NoError(t, err) {
		assert.JSONEq(t, `{"name":"Kira","stats":{"edge":2,"iron":4},"enabledAbilities":{"1":true}}`, string(patched))
	}
}

func TestApplyPatchEmptyDocument(t *testing.T) {
	patched, err := ApplyPatch(nil, SetField("supply", 5))
	if assert.NoError(t, err) {
		assert.JSONEq(t, `{"supply":5}`, string(patched))
	}
}

func TestApplyPatchSetWinsOverUnset(t *testing.T) {
	patched, err := ApplyPatch([]byte(`{"a":1}`), Patch{
		Set:   map[string]any{"a": 2},
		Unset: []string{"a"},
	})
	if assert.NoError(t, err) {
		assert.JSONEq(t, `{"a":2}`, string(patched))
	}
}

func TestApplyPatchInvalid(t *testing.T) {
	_, err := ApplyPatch([]byte(`[1,2]`), SetField("a", 1))
	assert.True(t, errors.Is(err, ErrorValidation{}))

	_, err = ApplyPatch([]byte(`{}`), SetField("a..b", 1))
	assert.True(t, errors.Is(err, ErrorValidation{}))
}

func TestApplyPatchUnionAndRemove(t *testing.T) {
	data := []byte(`{"characters":[{"uid":"u1","characterId":"ch1"}],"gmIds":"gm"}`)

	type member struct {
		UID         string `json:"uid"`
		CharacterID string `json:"characterId"`
	}

	patched, err := ApplyPatch(data, UnionField("characters", member{UID: "u1", CharacterID: "ch1"}, member{UID: "u2", CharacterID: "ch2"}))
	if assert.NoError(t, err) {
		assert.JSONEq(t, `{"characters":[{"uid":"u1","characterId":"ch1"},{"uid":"u2","characterId":"ch2"}],"gmIds":"gm"}`, string(patched))
	}

	patched, err = ApplyPatch(patched, RemoveField("characters", map[string]any{"characterId": "ch1", "uid": "u1"}))
	if assert.NoError(t, err) {
		assert.JSONEq(t, `{"characters":[{"uid":"u2","characterId":"ch2"}],"gmIds":"gm"}`, string(patched))
	}

	// a missing or non-array field starts empty
	patched, err = ApplyPatch(patched, Patch{
		Union:  map[string][]any{"gmIds": {"gm2"}, "tags": {1, 2, 2}},
		Remove: map[string][]any{"missing": {"x"}},
	})
	if assert.NoError(t, err) {
		assert.JSONEq(t, `{"characters":[{"uid":"u2","characterId":"ch2"}],"gmIds":["gm2"],"tags":[1,2],"missing":[]}`, string(patched))
	}
}

func TestApplyPatchUnionsCommute(t *testing.T) {
	first := UnionField("characters", map[string]any{"uid": "u1", "characterId": "ch1"})
	second := UnionField("characters", map[string]any{"uid": "u2", "characterId": "ch2"})

	a, err := ApplyPatch([]byte(`{"characters":[]}`), first)
	assert.NoError(t, err)
	a, err = ApplyPatch(a, second)
	assert.NoError(t, err)

	b, err := ApplyPatch([]byte(`{"characters":[]}`), second)
	assert.NoError(t, err)
	b, err = ApplyPatch(b, first)
	assert.NoError(t, err)

	var left, right struct {
		Characters []map[string]string `json:"characters"`
	}
	assert.NoError(t, json.Unmarshal(a, &left))
	assert.NoError(t, json.Unmarshal(b, &right))
	assert.ElementsMatch(t, left.Characters, right.Characters)
	assert.Len(t, left.Characters, 2)
}

func TestPatchFields(t *testing.T) {
	patch := Patch{
		Set:    map[string]any{"b": 1, "a": 2},
		Unset:  []string{"c", "a"},
		Union:  map[string][]any{"d": {1}},
		Remove: map[string][]any{"d": {2}},
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, patch.Fields())
	assert.False(t, RemoveField("d", 1).IsEmpty())
	assert.False(t, patch.IsEmpty())
	assert.True(t, Patch{}.IsEmpty())
}

func TestWireTimestampRoundTrip(t *testing.T) {
	date := time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)

	wire := ToWireTimestamp(date)
	assert.Equal(t, int64(1700000000), wire.Seconds)
	assert.Equal(t, int32(0), wire.Nanoseconds)
	assert.True(t, ToLocalDate(wire).Equal(date))

	local := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*60*60))
	assert.True(t, ToLocalDate(ToWireTimestamp(local)).Equal(local))

	now := ServerTimestamp()
	assert.Equal(t, int32(0), now.Nanoseconds)
}
