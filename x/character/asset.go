package character

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

func requireCharacter(characterID string) error {
	if characterID == "" {
		return core.NewErrorValidation("character id is required")
	}
	return nil
}

func requireAsset(characterID, assetID string) error {
	if err := requireCharacter(characterID); err != nil {
		return err
	}
	if assetID == "" {
		return core.NewErrorValidation("asset id is required")
	}
	return nil
}

// AddAsset implements core.CharacterService
func (s *service) AddAsset(ctx context.Context, characterID string, asset core.Asset) (string, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.AddAsset")
	defer span.End()

	if err := requireCharacter(characterID); err != nil {
		return "", err
	}
	if asset.AssetID == "" {
		return "", core.NewErrorValidation("asset definition id is required")
	}
	if asset.EnabledAbilities == nil {
		asset.EnabledAbilities = map[string]bool{}
	}
	if asset.Track != nil && (asset.Track.Value < 0 || asset.Track.Value > asset.Track.Max) {
		return "", core.NewErrorValidation(fmt.Sprintf("asset track value must be between 0 and %d", asset.Track.Max))
	}

	id, err := s.gateway.Add(ctx, core.CharacterAssetsPath(characterID), asset)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	span.SetAttributes(attribute.String("path", core.CharacterAssetPath(characterID, id)))

	return id, nil
}

// RemoveAsset implements core.CharacterService
func (s *service) RemoveAsset(ctx context.Context, characterID, assetID string) error {
	ctx, span := tracer.Start(ctx, "Character.Service.RemoveAsset")
	defer span.End()

	if err := requireAsset(characterID, assetID); err != nil {
		return err
	}

	err := s.gateway.Delete(ctx, core.CharacterAssetPath(characterID, assetID))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// UpdateAssetInput implements core.CharacterService
func (s *service) UpdateAssetInput(ctx context.Context, characterID, assetID, label, value string) error {
	ctx, span := tracer.Start(ctx, "Character.Service.UpdateAssetInput")
	defer span.End()

	if err := requireAsset(characterID, assetID); err != nil {
		return err
	}
	// labels become patch keys
	if label == "" || strings.Contains(label, ".") {
		return core.NewErrorValidation("invalid asset input label: " + label)
	}

	err := s.gateway.Write(ctx, core.CharacterAssetPath(characterID, assetID), core.SetField("inputs."+label, value))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// UpdateAssetCheckbox implements core.CharacterService
func (s *service) UpdateAssetCheckbox(ctx context.Context, characterID, assetID string, abilityIndex int, checked bool) error {
	ctx, span := tracer.Start(ctx, "Character.Service.UpdateAssetCheckbox")
	defer span.End()

	if err := requireAsset(characterID, assetID); err != nil {
		return err
	}
	if abilityIndex < 0 {
		return core.NewErrorValidation("ability index must not be negative")
	}

	field := "enabledAbilities." + strconv.Itoa(abilityIndex)
	err := s.gateway.Write(ctx, core.CharacterAssetPath(characterID, assetID), core.SetField(field, checked))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// UpdateAssetTrack implements core.CharacterService. The value is bounded by the track max stored
// on the asset.
func (s *service) UpdateAssetTrack(ctx context.Context, characterID, assetID string, value int) error {
	ctx, span := tracer.Start(ctx, "Character.Service.UpdateAssetTrack")
	defer span.End()

	if err := requireAsset(characterID, assetID); err != nil {
		return err
	}

	path := core.CharacterAssetPath(characterID, assetID)
	doc, err := s.store.Get(ctx, path)
	if err != nil {
		span.RecordError(err)
		return err
	}
	entity, err := core.NormalizeDocument(doc)
	if err != nil {
		span.RecordError(err)
		return err
	}
	asset, ok := entity.Value.(core.Asset)
	if !ok || asset.Track == nil {
		return core.NewErrorValidation("asset has no track: " + path)
	}
	if value < 0 || value > asset.Track.Max {
		return core.NewErrorValidation(fmt.Sprintf("asset track value must be between 0 and %d", asset.Track.Max))
	}

	err = s.gateway.Write(ctx, path, core.SetField("track.value", value))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// UpdateCustomAsset implements core.CharacterService. A nil definition removes the custom asset.
func (s *service) UpdateCustomAsset(ctx context.Context, characterID, assetID string, customAsset map[string]any) error {
	ctx, span := tracer.Start(ctx, "Character.Service.UpdateCustomAsset")
	defer span.End()

	if err := requireAsset(characterID, assetID); err != nil {
		return err
	}

	patch := core.SetField("customAsset", customAsset)
	if customAsset == nil {
		patch = core.UnsetField("customAsset")
	}

	err := s.gateway.Write(ctx, core.CharacterAssetPath(characterID, assetID), patch)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
