package packs

import (
	_ "embed"
	"sync"
)

//go:embed data/default_packs.v1.json
var defaultPacksJSON []byte

var (
	loadDefaultOnce sync.Once
	defaultManifest Manifest
	defaultLoadErr  error
)

// Default returns the embedded reference manifest the seeder registers.
//
// The embedded JSON is parsed and validated once; callers receive a
// fresh copy so they cannot mutate cached package state.
func Default() (Manifest, error) {
	loadDefaultOnce.Do(func() {
		defaultManifest, defaultLoadErr = ParseManifest(defaultPacksJSON)
	})
	if defaultLoadErr != nil {
		return Manifest{}, defaultLoadErr
	}
	return copyManifest(defaultManifest), nil
}

func copyManifest(source Manifest) Manifest {
	out := Manifest{FormatVersion: source.FormatVersion}
	if len(source.Packs) == 0 {
		return out
	}
	out.Packs = make([]Pack, len(source.Packs))
	for i, pack := range source.Packs {
		out.Packs[i] = copyPack(pack)
	}
	return out
}

func copyPack(source Pack) Pack {
	out := source
	if len(source.Animations) > 0 {
		out.Animations = make([]Animation, len(source.Animations))
		for i, anim := range source.Animations {
			out.Animations[i] = anim
			out.Animations[i].FrameRate = copyFloatPtr(anim.FrameRate)
			out.Animations[i].Loop = copyBoolPtr(anim.Loop)
		}
	}
	if len(source.Effects) > 0 {
		out.Effects = make([]Effect, len(source.Effects))
		for i, effect := range source.Effects {
			out.Effects[i] = effect
			if len(effect.Triggers) > 0 {
				out.Effects[i].Triggers = append([]Trigger(nil), effect.Triggers...)
			}
		}
	}
	return out
}
