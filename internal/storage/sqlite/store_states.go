package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emberkeep/spritebank/internal/domain/animation"
	"github.com/emberkeep/spritebank/internal/domain/character"
	"github.com/emberkeep/spritebank/internal/storage"
)

// ListAnimationStates returns the seeded animation state vocabulary in
// state id order.
func (s *Store) ListAnimationStates(ctx context.Context) ([]storage.AnimationState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT state_id, state_name, default_frame_rate, default_loop
		FROM animation_states
		ORDER BY state_id`)
	if err != nil {
		return nil, fmt.Errorf("list animation states: %w", err)
	}
	defer rows.Close()

	var states []storage.AnimationState
	for rows.Next() {
		var state storage.AnimationState
		var stateID int64
		if err := rows.Scan(&stateID, &state.Name, &state.DefaultFrameRate, &state.DefaultLoop); err != nil {
			return nil, fmt.Errorf("scan animation state: %w", err)
		}
		state.State = animation.State(stateID)
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate animation states: %w", err)
	}
	return states, nil
}

// GetAnimationState returns one seeded animation state row.
func (s *Store) GetAnimationState(ctx context.Context, state animation.State) (storage.AnimationState, error) {
	if err := ctx.Err(); err != nil {
		return storage.AnimationState{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.AnimationState{}, fmt.Errorf("storage is not configured")
	}
	if !state.Valid() {
		return storage.AnimationState{}, fmt.Errorf("animation state %d is not valid", int(state))
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT state_id, state_name, default_frame_rate, default_loop
		FROM animation_states
		WHERE state_id = ?`, int64(state))

	var record storage.AnimationState
	var stateID int64
	err := row.Scan(&stateID, &record.Name, &record.DefaultFrameRate, &record.DefaultLoop)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.AnimationState{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.AnimationState{}, fmt.Errorf("get animation state: %w", err)
	}
	record.State = animation.State(stateID)
	return record, nil
}

// ListCharacterTypes returns the seeded character roles in id order.
func (s *Store) ListCharacterTypes(ctx context.Context) ([]storage.CharacterType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT type_id, display_name
		FROM character_types
		ORDER BY type_id`)
	if err != nil {
		return nil, fmt.Errorf("list character types: %w", err)
	}
	defer rows.Close()

	var types []storage.CharacterType
	for rows.Next() {
		var record storage.CharacterType
		var role string
		if err := rows.Scan(&role, &record.DisplayName); err != nil {
			return nil, fmt.Errorf("scan character type: %w", err)
		}
		record.Role = character.Role(role)
		types = append(types, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate character types: %w", err)
	}
	return types, nil
}
