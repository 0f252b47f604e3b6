// Package seed loads the reference catalog content: characters, role
// extensions, and the embedded default asset packs. Every write is
// insert-if-absent, so re-running the seeder never modifies rows an
// operator has changed.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/emberkeep/spritebank/internal/packs"
	"github.com/emberkeep/spritebank/internal/storage"
)

// Store is the catalog surface the seeder writes through.
type Store interface {
	storage.CharacterStore
	storage.PackStore
	storage.AnimationStore
	storage.EffectStore
}

// CategoryCount splits one category's rows into freshly inserted and
// already present.
type CategoryCount struct {
	Inserted int
	Existing int
}

// Summary reports per-category counts for one seeding pass.
type Summary struct {
	Characters     CategoryCount
	HeroStats      CategoryCount
	EnemyStats     CategoryCount
	AssetPacks     CategoryCount
	Animations     CategoryCount
	SpecialEffects CategoryCount
	EffectLinks    CategoryCount
}

// Inserted returns the total number of rows written by the pass.
func (s Summary) Inserted() int {
	return s.Characters.Inserted + s.HeroStats.Inserted + s.EnemyStats.Inserted +
		s.AssetPacks.Inserted + s.Animations.Inserted + s.SpecialEffects.Inserted +
		s.EffectLinks.Inserted
}

// Plan reports the row counts Apply would install into an empty catalog.
// It validates the embedded manifest without touching any store.
func Plan() (Summary, error) {
	manifest, err := packs.Default()
	if err != nil {
		return Summary{}, fmt.Errorf("load default packs: %w", err)
	}

	var summary Summary
	summary.Characters.Inserted = len(characterFixtures)
	summary.HeroStats.Inserted = len(heroStatFixtures)
	summary.EnemyStats.Inserted = len(enemyStatFixtures)
	summary.AssetPacks.Inserted = len(manifest.Packs)
	for _, pack := range manifest.Packs {
		summary.Animations.Inserted += len(pack.Animations)
		for _, effect := range pack.Effects {
			summary.SpecialEffects.Inserted++
			summary.EffectLinks.Inserted += len(effect.Triggers)
		}
	}
	return summary, nil
}

// Apply seeds the reference content. Characters come before packs so the
// manifest's animation and trigger rows can reference them.
func Apply(ctx context.Context, store Store) (Summary, error) {
	if store == nil {
		return Summary{}, fmt.Errorf("store is required")
	}
	manifest, err := packs.Default()
	if err != nil {
		return Summary{}, fmt.Errorf("load default packs: %w", err)
	}

	var summary Summary
	if err := applyCharacters(ctx, store, &summary); err != nil {
		return Summary{}, err
	}
	if err := applyManifest(ctx, store, manifest, &summary); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func applyCharacters(ctx context.Context, store Store, summary *Summary) error {
	for _, fixture := range characterFixtures {
		err := store.PutCharacter(ctx, fixture)
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			summary.Characters.Existing++
		case err != nil:
			return fmt.Errorf("seed character %s: %w", fixture.ID, err)
		default:
			summary.Characters.Inserted++
		}
	}
	for _, fixture := range heroStatFixtures {
		err := store.PutHeroStats(ctx, fixture)
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			summary.HeroStats.Existing++
		case err != nil:
			return fmt.Errorf("seed hero stats %s: %w", fixture.CharacterID, err)
		default:
			summary.HeroStats.Inserted++
		}
	}
	for _, fixture := range enemyStatFixtures {
		err := store.PutEnemyStats(ctx, fixture)
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			summary.EnemyStats.Existing++
		case err != nil:
			return fmt.Errorf("seed enemy stats %s: %w", fixture.CharacterID, err)
		default:
			summary.EnemyStats.Inserted++
		}
	}
	return nil
}

func applyManifest(ctx context.Context, store Store, manifest packs.Manifest, summary *Summary) error {
	for _, pack := range manifest.Packs {
		switch _, err := store.GetAssetPack(ctx, pack.ID); {
		case errors.Is(err, storage.ErrNotFound):
			if err := store.PutAssetPack(ctx, storage.AssetPack{
				ID:       pack.ID,
				Name:     pack.Name,
				Author:   pack.Author,
				Version:  pack.Version,
				License:  pack.License,
				BasePath: pack.BasePath,
			}); err != nil {
				return fmt.Errorf("seed pack %s: %w", pack.ID, err)
			}
			summary.AssetPacks.Inserted++
		case err != nil:
			return fmt.Errorf("check pack %s: %w", pack.ID, err)
		default:
			summary.AssetPacks.Existing++
		}

		for _, anim := range pack.Animations {
			switch _, err := store.GetCharacterAnimation(ctx, anim.CharacterID, anim.State, pack.ID); {
			case errors.Is(err, storage.ErrNotFound):
				if err := store.UpsertCharacterAnimation(ctx, storage.CharacterAnimation{
					CharacterID:     anim.CharacterID,
					State:           anim.State,
					PackID:          pack.ID,
					SpriteSheetName: anim.SpriteSheetName,
					FrameCount:      anim.FrameCount,
					FrameWidth:      anim.FrameWidth,
					FrameHeight:     anim.FrameHeight,
					FrameRate:       anim.FrameRate,
					Loop:            anim.Loop,
				}); err != nil {
					return fmt.Errorf("seed animation %s/%s: %w", anim.CharacterID, anim.State, err)
				}
				summary.Animations.Inserted++
			case err != nil:
				return fmt.Errorf("check animation %s/%s: %w", anim.CharacterID, anim.State, err)
			default:
				summary.Animations.Existing++
			}
		}

		for _, effect := range pack.Effects {
			effectID, err := seedEffect(ctx, store, pack.ID, effect, summary)
			if err != nil {
				return err
			}
			for _, trigger := range effect.Triggers {
				err := store.LinkCharacterEffect(ctx, storage.CharacterEffect{
					CharacterID:  trigger.CharacterID,
					EffectID:     effectID,
					TriggerState: trigger.State,
					OffsetX:      trigger.OffsetX,
					OffsetY:      trigger.OffsetY,
				})
				switch {
				case errors.Is(err, storage.ErrAlreadyExists):
					summary.EffectLinks.Existing++
				case err != nil:
					return fmt.Errorf("seed trigger %s/%s: %w", trigger.CharacterID, trigger.State, err)
				default:
					summary.EffectLinks.Inserted++
				}
			}
		}
	}
	return nil
}

func seedEffect(ctx context.Context, store Store, packID string, effect packs.Effect, summary *Summary) (int64, error) {
	existing, err := store.GetSpecialEffectByName(ctx, effect.Name)
	if err == nil {
		summary.SpecialEffects.Existing++
		return existing.ID, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("check effect %s: %w", effect.Name, err)
	}
	effectID, err := store.UpsertSpecialEffect(ctx, storage.SpecialEffect{
		Name:            effect.Name,
		PackID:          packID,
		SpriteSheetName: effect.SpriteSheetName,
		FrameCount:      effect.FrameCount,
		FrameWidth:      effect.FrameWidth,
		FrameHeight:     effect.FrameHeight,
		FrameRate:       effect.FrameRate,
	})
	if err != nil {
		return 0, fmt.Errorf("seed effect %s: %w", effect.Name, err)
	}
	summary.SpecialEffects.Inserted++
	return effectID, nil
}
