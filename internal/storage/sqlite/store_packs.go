package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/emberkeep/spritebank/internal/storage"
)

// PutAssetPack inserts or updates one asset pack.
func (s *Store) PutAssetPack(ctx context.Context, record storage.AssetPack) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.ID = strings.TrimSpace(record.ID)
	if record.ID == "" {
		return fmt.Errorf("pack id is required")
	}
	record.Name = strings.TrimSpace(record.Name)
	if record.Name == "" {
		return fmt.Errorf("pack name is required")
	}
	record.BasePath = strings.TrimSpace(record.BasePath)
	if record.BasePath == "" {
		return fmt.Errorf("pack base path is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO asset_packs (pack_id, pack_name, author, version, license, base_path)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(pack_id) DO UPDATE SET
			pack_name = excluded.pack_name,
			author = excluded.author,
			version = excluded.version,
			license = excluded.license,
			base_path = excluded.base_path`,
		record.ID, record.Name, toNullString(record.Author),
		toNullString(record.Version), toNullString(record.License),
		record.BasePath)
	if err != nil {
		return fmt.Errorf("put asset pack: %w", err)
	}
	return nil
}

// GetAssetPack returns one asset pack.
func (s *Store) GetAssetPack(ctx context.Context, id string) (storage.AssetPack, error) {
	if err := ctx.Err(); err != nil {
		return storage.AssetPack{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.AssetPack{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.AssetPack{}, fmt.Errorf("pack id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT pack_id, pack_name, author, version, license, base_path
		FROM asset_packs
		WHERE pack_id = ?`, id)

	var record storage.AssetPack
	var author, version, license sql.NullString
	err := row.Scan(&record.ID, &record.Name, &author, &version, &license,
		&record.BasePath)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.AssetPack{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.AssetPack{}, fmt.Errorf("get asset pack: %w", err)
	}
	record.Author = fromNullString(author)
	record.Version = fromNullString(version)
	record.License = fromNullString(license)
	return record, nil
}

// ListAssetPacks returns every asset pack in id order.
func (s *Store) ListAssetPacks(ctx context.Context) ([]storage.AssetPack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT pack_id, pack_name, author, version, license, base_path
		FROM asset_packs
		ORDER BY pack_id`)
	if err != nil {
		return nil, fmt.Errorf("list asset packs: %w", err)
	}
	defer rows.Close()

	var records []storage.AssetPack
	for rows.Next() {
		var record storage.AssetPack
		var author, version, license sql.NullString
		if err := rows.Scan(&record.ID, &record.Name, &author, &version,
			&license, &record.BasePath); err != nil {
			return nil, fmt.Errorf("scan asset pack: %w", err)
		}
		record.Author = fromNullString(author)
		record.Version = fromNullString(version)
		record.License = fromNullString(license)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset packs: %w", err)
	}
	return records, nil
}
