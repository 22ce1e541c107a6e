package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTreelinkProfilesTable, downCreateTreelinkProfilesTable)
}

func upCreateTreelinkProfilesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE treelink_profiles (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  email TEXT UNIQUE NOT NULL,
	  handle TEXT,
	  profile_image TEXT,
	  links JSONB NOT NULL DEFAULT '[]'::jsonb,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE UNIQUE INDEX treelink_profiles_handle_key ON treelink_profiles (handle);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateTreelinkProfilesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS treelink_profiles;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
