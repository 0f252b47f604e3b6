// Package packs defines the asset-pack manifest format shared by the
// embedded default content and the external pack importer.
package packs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/emberkeep/spritebank/internal/domain/animation"
)

// FormatVersion is the manifest schema revision this package reads.
const FormatVersion = 1

// ErrFormatVersion indicates a manifest written for a different schema
// revision.
var ErrFormatVersion = errors.New("unsupported manifest format version")

// Manifest is a parsed and normalized pack manifest document.
type Manifest struct {
	FormatVersion int
	Packs         []Pack
}

// Pack describes one asset pack and the catalog rows it contributes.
type Pack struct {
	ID         string
	Name       string
	Author     string
	Version    string
	License    string
	BasePath   string
	Animations []Animation
	Effects    []Effect
}

// Animation binds a character/state pair to a sprite sheet inside the
// pack. A nil FrameRate or Loop defers to the state default.
type Animation struct {
	CharacterID     string
	State           animation.State
	SpriteSheetName string
	FrameCount      int
	FrameWidth      int
	FrameHeight     int
	FrameRate       *float64
	Loop            *bool
}

// Effect describes a standalone visual effect and the character states
// that trigger it.
type Effect struct {
	Name            string
	SpriteSheetName string
	FrameCount      int
	FrameWidth      int
	FrameHeight     int
	FrameRate       float64
	Triggers        []Trigger
}

// Trigger attaches an effect to one character animation state with a
// pixel offset for rendering placement.
type Trigger struct {
	CharacterID string
	State       animation.State
	OffsetX     int
	OffsetY     int
}

type manifestJSON struct {
	FormatVersion int        `json:"format_version"`
	Packs         []packJSON `json:"packs"`
}

type packJSON struct {
	PackID     string          `json:"pack_id"`
	PackName   string          `json:"pack_name"`
	Author     string          `json:"author"`
	Version    string          `json:"version"`
	License    string          `json:"license"`
	BasePath   string          `json:"base_path"`
	Animations []animationJSON `json:"animations"`
	Effects    []effectJSON    `json:"effects"`
}

type animationJSON struct {
	CharacterID     string   `json:"character_id"`
	State           string   `json:"state"`
	SpriteSheetName string   `json:"sprite_sheet_name"`
	FrameCount      int      `json:"frame_count"`
	FrameWidth      int      `json:"frame_width"`
	FrameHeight     int      `json:"frame_height"`
	FrameRate       *float64 `json:"frame_rate"`
	Loop            *bool    `json:"loop"`
}

type effectJSON struct {
	EffectName      string        `json:"effect_name"`
	SpriteSheetName string        `json:"sprite_sheet_name"`
	FrameCount      int           `json:"frame_count"`
	FrameWidth      int           `json:"frame_width"`
	FrameHeight     int           `json:"frame_height"`
	FrameRate       float64       `json:"frame_rate"`
	Triggers        []triggerJSON `json:"triggers"`
}

type triggerJSON struct {
	CharacterID string `json:"character_id"`
	State       string `json:"state"`
	OffsetX     int    `json:"offset_x"`
	OffsetY     int    `json:"offset_y"`
}

// ParseManifest decodes and validates one manifest document.
func ParseManifest(raw []byte) (Manifest, error) {
	var payload manifestJSON
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	if payload.FormatVersion != FormatVersion {
		return Manifest{}, fmt.Errorf("%w: %d", ErrFormatVersion, payload.FormatVersion)
	}

	manifest := Manifest{FormatVersion: payload.FormatVersion}
	for _, rawPack := range payload.Packs {
		pack := Pack{
			ID:       strings.TrimSpace(rawPack.PackID),
			Name:     strings.TrimSpace(rawPack.PackName),
			Author:   strings.TrimSpace(rawPack.Author),
			Version:  strings.TrimSpace(rawPack.Version),
			License:  strings.TrimSpace(rawPack.License),
			BasePath: strings.TrimSpace(rawPack.BasePath),
		}
		for i, rawAnimation := range rawPack.Animations {
			state, ok := animation.NormalizeState(rawAnimation.State)
			if !ok {
				return Manifest{}, fmt.Errorf("pack %q animation %d: unknown state %q",
					pack.ID, i, rawAnimation.State)
			}
			pack.Animations = append(pack.Animations, Animation{
				CharacterID:     strings.TrimSpace(rawAnimation.CharacterID),
				State:           state,
				SpriteSheetName: strings.TrimSpace(rawAnimation.SpriteSheetName),
				FrameCount:      rawAnimation.FrameCount,
				FrameWidth:      rawAnimation.FrameWidth,
				FrameHeight:     rawAnimation.FrameHeight,
				FrameRate:       copyFloatPtr(rawAnimation.FrameRate),
				Loop:            copyBoolPtr(rawAnimation.Loop),
			})
		}
		for i, rawEffect := range rawPack.Effects {
			effect := Effect{
				Name:            strings.TrimSpace(rawEffect.EffectName),
				SpriteSheetName: strings.TrimSpace(rawEffect.SpriteSheetName),
				FrameCount:      rawEffect.FrameCount,
				FrameWidth:      rawEffect.FrameWidth,
				FrameHeight:     rawEffect.FrameHeight,
				FrameRate:       rawEffect.FrameRate,
			}
			for j, rawTrigger := range rawEffect.Triggers {
				state, ok := animation.NormalizeState(rawTrigger.State)
				if !ok {
					return Manifest{}, fmt.Errorf("pack %q effect %d trigger %d: unknown state %q",
						pack.ID, i, j, rawTrigger.State)
				}
				effect.Triggers = append(effect.Triggers, Trigger{
					CharacterID: strings.TrimSpace(rawTrigger.CharacterID),
					State:       state,
					OffsetX:     rawTrigger.OffsetX,
					OffsetY:     rawTrigger.OffsetY,
				})
			}
			pack.Effects = append(pack.Effects, effect)
		}
		manifest.Packs = append(manifest.Packs, pack)
	}

	if err := manifest.Validate(); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

// LoadManifest reads and parses one manifest file.
func LoadManifest(path string) (Manifest, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Manifest{}, fmt.Errorf("manifest path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	manifest, err := ParseManifest(raw)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return manifest, nil
}

// Validate checks structural manifest rules: identifiers present, frame
// geometry positive, no duplicate pack ids, no duplicate character/state
// animations per pack, and effect names unique across the document.
func (m Manifest) Validate() error {
	if m.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: %d", ErrFormatVersion, m.FormatVersion)
	}
	if len(m.Packs) == 0 {
		return fmt.Errorf("manifest has no packs")
	}
	seenPacks := map[string]bool{}
	seenEffects := map[string]bool{}
	for _, pack := range m.Packs {
		if pack.ID == "" {
			return fmt.Errorf("pack id is required")
		}
		if seenPacks[pack.ID] {
			return fmt.Errorf("duplicate pack id %q", pack.ID)
		}
		seenPacks[pack.ID] = true
		if pack.Name == "" {
			return fmt.Errorf("pack %q: name is required", pack.ID)
		}
		if pack.BasePath == "" {
			return fmt.Errorf("pack %q: base path is required", pack.ID)
		}

		seenAnimations := map[string]bool{}
		for i, anim := range pack.Animations {
			if anim.CharacterID == "" {
				return fmt.Errorf("pack %q animation %d: character id is required", pack.ID, i)
			}
			if !anim.State.Valid() {
				return fmt.Errorf("pack %q animation %d: state %d is not valid", pack.ID, i, int(anim.State))
			}
			if anim.SpriteSheetName == "" {
				return fmt.Errorf("pack %q animation %d: sprite sheet name is required", pack.ID, i)
			}
			if anim.FrameCount <= 0 || anim.FrameWidth <= 0 || anim.FrameHeight <= 0 {
				return fmt.Errorf("pack %q animation %d: frame geometry must be positive", pack.ID, i)
			}
			if anim.FrameRate != nil && *anim.FrameRate <= 0 {
				return fmt.Errorf("pack %q animation %d: frame rate must be positive", pack.ID, i)
			}
			key := anim.CharacterID + "\x00" + anim.State.String()
			if seenAnimations[key] {
				return fmt.Errorf("pack %q: duplicate animation for %s/%s", pack.ID, anim.CharacterID, anim.State)
			}
			seenAnimations[key] = true
		}

		for i, effect := range pack.Effects {
			if effect.Name == "" {
				return fmt.Errorf("pack %q effect %d: name is required", pack.ID, i)
			}
			if seenEffects[effect.Name] {
				return fmt.Errorf("duplicate effect name %q", effect.Name)
			}
			seenEffects[effect.Name] = true
			if effect.SpriteSheetName == "" {
				return fmt.Errorf("effect %q: sprite sheet name is required", effect.Name)
			}
			if effect.FrameCount <= 0 || effect.FrameWidth <= 0 || effect.FrameHeight <= 0 {
				return fmt.Errorf("effect %q: frame geometry must be positive", effect.Name)
			}
			if effect.FrameRate <= 0 {
				return fmt.Errorf("effect %q: frame rate must be positive", effect.Name)
			}
			seenTriggers := map[string]bool{}
			for j, trigger := range effect.Triggers {
				if trigger.CharacterID == "" {
					return fmt.Errorf("effect %q trigger %d: character id is required", effect.Name, j)
				}
				if !trigger.State.Valid() {
					return fmt.Errorf("effect %q trigger %d: state %d is not valid", effect.Name, j, int(trigger.State))
				}
				key := trigger.CharacterID + "\x00" + trigger.State.String()
				if seenTriggers[key] {
					return fmt.Errorf("effect %q: duplicate trigger for %s/%s", effect.Name, trigger.CharacterID, trigger.State)
				}
				seenTriggers[key] = true
			}
		}
	}
	return nil
}

// CharacterIDs returns the distinct characters the manifest references,
// in first-seen order.
func (m Manifest) CharacterIDs() []string {
	seen := map[string]bool{}
	var ids []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, pack := range m.Packs {
		for _, anim := range pack.Animations {
			add(anim.CharacterID)
		}
		for _, effect := range pack.Effects {
			for _, trigger := range effect.Triggers {
				add(trigger.CharacterID)
			}
		}
	}
	return ids
}

func copyFloatPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	f := *value
	return &f
}

func copyBoolPtr(value *bool) *bool {
	if value == nil {
		return nil
	}
	b := *value
	return &b
}
