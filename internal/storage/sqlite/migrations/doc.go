// Package migrations embeds SQL migration scripts for the catalog store.
//
// Why this package exists:
// - It preserves the full schema history, including the retired
//   first-generation hero/enemy tables, as ordered migration steps.
// - It allows upgrade-safe evolution without manual operator SQL.
// - It supports both development bootstrap and production migration
//   workflows through the same embedded files.
package migrations
