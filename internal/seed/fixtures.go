package seed

import (
	"github.com/emberkeep/spritebank/internal/domain/character"
	"github.com/emberkeep/spritebank/internal/storage"
)

// Character fixtures carry the base stats only. Armor, magic resist and
// critical chance stay at their column defaults. Pack, animation and
// effect content comes from the embedded default manifest so the seeder
// and the importer share one format.

var characterFixtures = []storage.Character{
	{ID: "knight", Role: character.RoleHero, MaxHealth: 375, Speed: 50, Damage: 55, AttackRange: 40},
	{ID: "cleric", Role: character.RoleHero, MaxHealth: 250, Speed: 35, Damage: 85, AttackRange: 75},
	{ID: "archer", Role: character.RoleHero, MaxHealth: 150, Speed: 20, Damage: 40, AttackRange: 150},
	{ID: "skeleton_archer", Role: character.RoleEnemy, MaxHealth: 50, Speed: 10, Damage: 50, AttackRange: 100},
	{ID: "skeleton_spearman", Role: character.RoleEnemy, MaxHealth: 70, Speed: 15, Damage: 40, AttackRange: 70},
	{ID: "skeleton_warrior", Role: character.RoleEnemy, MaxHealth: 95, Speed: 20, Damage: 30, AttackRange: 45},
	{ID: "gorgon_1", Role: character.RoleEnemy, MaxHealth: 100, Speed: 75, Damage: 35, AttackRange: 40},
	{ID: "gorgon_2", Role: character.RoleEnemy, MaxHealth: 105, Speed: 75, Damage: 35, AttackRange: 40},
	{ID: "gorgon_3", Role: character.RoleEnemy, MaxHealth: 115, Speed: 75, Damage: 35, AttackRange: 40},
}

var heroStatFixtures = []storage.HeroStats{
	{CharacterID: "knight", SpecialCooldown: 15.0, SpecialAbilityName: "Shield Bash", UnlockLevel: 1},
	{CharacterID: "cleric", SpecialCooldown: 12.0, SpecialAbilityName: "Healing Light", UnlockLevel: 1},
	{CharacterID: "archer", SpecialCooldown: 10.0, SpecialAbilityName: "Piercing Shot", UnlockLevel: 1},
}

var enemyStatFixtures = []storage.EnemyStats{
	{CharacterID: "skeleton_archer", SpawnWeight: 10, ExperienceValue: 50, GoldDropMin: 5, GoldDropMax: 10},
	{CharacterID: "skeleton_spearman", SpawnWeight: 15, ExperienceValue: 70, GoldDropMin: 7, GoldDropMax: 14},
	{CharacterID: "skeleton_warrior", SpawnWeight: 20, ExperienceValue: 95, GoldDropMin: 10, GoldDropMax: 20},
	{CharacterID: "gorgon_1", SpawnWeight: 15, ExperienceValue: 100, GoldDropMin: 15, GoldDropMax: 30},
	{CharacterID: "gorgon_2", SpawnWeight: 15, ExperienceValue: 105, GoldDropMin: 15, GoldDropMax: 30},
	{CharacterID: "gorgon_3", SpawnWeight: 15, ExperienceValue: 115, GoldDropMin: 15, GoldDropMax: 30},
}
