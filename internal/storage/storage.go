// Package storage defines persistence contracts for the sprite catalog.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/emberkeep/spritebank/internal/domain/animation"
	"github.com/emberkeep/spritebank/internal/domain/character"
)

var (
	// ErrNotFound indicates a requested catalog record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrRoleMismatch indicates a role-extension write against a character of
	// the other role.
	ErrRoleMismatch = errors.New("character role does not match extension")
)

// CharacterType stores one seeded role lookup row.
type CharacterType struct {
	Role        character.Role
	DisplayName string
}

// Character stores the shared combat attributes for one catalog character.
type Character struct {
	ID             string
	Role           character.Role
	MaxHealth      int
	Speed          float64
	Damage         int
	AttackRange    int
	Armor          int
	MagicResist    int
	CriticalChance float64
}

// HeroStats stores the hero-only extension attributes.
type HeroStats struct {
	CharacterID        string
	SpecialCooldown    float64
	SpecialAbilityName string
	UnlockLevel        int
}

// EnemyStats stores the enemy-only extension attributes.
type EnemyStats struct {
	CharacterID     string
	SpawnWeight     int
	ExperienceValue int
	GoldDropMin     int
	GoldDropMax     int
}

// Hero is a character joined with its hero extension.
type Hero struct {
	Character
	SpecialCooldown    float64
	SpecialAbilityName string
	UnlockLevel        int
}

// Enemy is a character joined with its enemy extension.
type Enemy struct {
	Character
	SpawnWeight     int
	ExperienceValue int
	GoldDropMin     int
	GoldDropMax     int
}

// AssetPack describes a distributable bundle of art assets.
type AssetPack struct {
	ID       string
	Name     string
	Author   string
	Version  string
	License  string
	BasePath string
}

// AnimationState stores one seeded animation-state lookup row.
type AnimationState struct {
	State            animation.State
	Name             string
	DefaultFrameRate float64
	DefaultLoop      bool
}

// CharacterAnimation stores sprite-sheet metadata for one
// character/state/pack combination. A nil FrameRate or Loop means the
// state's seeded default applies.
type CharacterAnimation struct {
	CharacterID     string
	State           animation.State
	PackID          string
	SpriteSheetName string
	FrameCount      int
	FrameWidth      int
	FrameHeight     int
	FrameRate       *float64
	Loop            *bool
}

// ResolvedAnimation is a character animation with the pack's base path and
// the state defaults applied.
type ResolvedAnimation struct {
	CharacterID     string
	State           animation.State
	StateName       string
	PackID          string
	SpriteSheetPath string
	FrameCount      int
	FrameWidth      int
	FrameHeight     int
	FrameRate       float64
	Loop            bool
}

// SpecialEffect describes a standalone visual effect and its sprite sheet.
type SpecialEffect struct {
	ID              int64
	Name            string
	PackID          string
	SpriteSheetName string
	FrameCount      int
	FrameWidth      int
	FrameHeight     int
	FrameRate       float64
}

// CharacterEffect links a character's animation state to a special effect,
// with a pixel offset for rendering placement.
type CharacterEffect struct {
	CharacterID  string
	EffectID     int64
	TriggerState animation.State
	OffsetX      int
	OffsetY      int
}

// TriggeredEffect is a character effect joined with its effect and pack
// metadata, ready for a renderer to consume.
type TriggeredEffect struct {
	CharacterID     string
	TriggerState    animation.State
	EffectName      string
	SpriteSheetPath string
	FrameCount      int
	FrameWidth      int
	FrameHeight     int
	FrameRate       float64
	OffsetX         int
	OffsetY         int
}

// ImportRun records one pack-importer execution.
type ImportRun struct {
	ID                 string
	Source             string
	StartedAt          time.Time
	FinishedAt         time.Time
	PacksImported      int
	AnimationsImported int
	EffectsImported    int
	DryRun             bool
}

// CatalogStatistics aggregates row counts across the catalog.
type CatalogStatistics struct {
	CharacterTypes      int
	Characters          int
	Heroes              int
	Enemies             int
	AssetPacks          int
	AnimationStates     int
	CharacterAnimations int
	SpecialEffects      int
	CharacterEffects    int
	ImportRuns          int
}

// IntegrityIssue describes one failed catalog integrity check.
type IntegrityIssue struct {
	Check  string `json:"check"`
	Detail string `json:"detail"`
}

// IntegrityReport aggregates catalog integrity findings.
type IntegrityReport struct {
	CheckedAt time.Time        `json:"checked_at"`
	Issues    []IntegrityIssue `json:"issues,omitempty"`
}

// Healthy reports whether the catalog passed every integrity check.
func (r IntegrityReport) Healthy() bool {
	return len(r.Issues) == 0
}

// StateStore reads the seeded lookup enumerations. Both sets are closed:
// no write operation is exposed for them.
type StateStore interface {
	ListAnimationStates(ctx context.Context) ([]AnimationState, error)
	GetAnimationState(ctx context.Context, state animation.State) (AnimationState, error)
	ListCharacterTypes(ctx context.Context) ([]CharacterType, error)
}

// CharacterStore persists characters and their role extensions.
type CharacterStore interface {
	PutCharacter(ctx context.Context, c Character) error
	GetCharacter(ctx context.Context, id string) (Character, error)
	ListCharacters(ctx context.Context) ([]Character, error)
	PutHeroStats(ctx context.Context, hs HeroStats) error
	GetHero(ctx context.Context, id string) (Hero, error)
	ListHeroIDs(ctx context.Context) ([]string, error)
	PutEnemyStats(ctx context.Context, es EnemyStats) error
	GetEnemy(ctx context.Context, id string) (Enemy, error)
	ListEnemyIDs(ctx context.Context) ([]string, error)
}

// PackStore persists asset pack records.
type PackStore interface {
	PutAssetPack(ctx context.Context, p AssetPack) error
	GetAssetPack(ctx context.Context, id string) (AssetPack, error)
	ListAssetPacks(ctx context.Context) ([]AssetPack, error)
}

// AnimationStore persists character animation rows.
type AnimationStore interface {
	UpsertCharacterAnimation(ctx context.Context, a CharacterAnimation) error
	GetCharacterAnimation(ctx context.Context, characterID string, state animation.State, packID string) (CharacterAnimation, error)
	ListCharacterAnimations(ctx context.Context, characterID string) ([]CharacterAnimation, error)
	ResolveAnimation(ctx context.Context, characterID string, state animation.State, packID string) (ResolvedAnimation, error)
	ListResolvedAnimations(ctx context.Context, characterID string) ([]ResolvedAnimation, error)
}

// EffectStore persists special effects and their character triggers.
type EffectStore interface {
	UpsertSpecialEffect(ctx context.Context, e SpecialEffect) (int64, error)
	GetSpecialEffectByName(ctx context.Context, name string) (SpecialEffect, error)
	ListSpecialEffects(ctx context.Context) ([]SpecialEffect, error)
	LinkCharacterEffect(ctx context.Context, link CharacterEffect) error
	ListCharacterEffects(ctx context.Context, characterID string) ([]CharacterEffect, error)
	ListTriggeredEffects(ctx context.Context, characterID string, state animation.State) ([]TriggeredEffect, error)
}

// ImportLogStore records asset-pipeline import executions.
type ImportLogStore interface {
	AppendImportRun(ctx context.Context, run ImportRun) error
	ListImportRuns(ctx context.Context, limit int) ([]ImportRun, error)
}

// IntegrityChecker inspects the catalog for invariant violations.
type IntegrityChecker interface {
	CheckIntegrity(ctx context.Context) (IntegrityReport, error)
	GetCatalogStatistics(ctx context.Context) (CatalogStatistics, error)
}
