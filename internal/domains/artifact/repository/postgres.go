package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"modelhub-backend/internal/domains/artifact"
	"modelhub-backend/internal/domains/artifact/model"
)

// postgresRepository implements artifact.Repository against a configurable
// table name.
type postgresRepository struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresRepository(pool *pgxpool.Pool, table string) artifact.Repository {
	return &postgresRepository{
		pool:  pool,
		table: table,
	}
}

func (r *postgresRepository) Create(ctx context.Context, a *model.ArtifactVersion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, version, filename, description,
			storage_path, mirror_path, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.table)

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Version,
		a.Filename,
		a.Description,
		a.StoragePath,
		a.MirrorPath,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert artifact version: %w", err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.ArtifactVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, version, filename, description, storage_path, mirror_path, created_at
		FROM %s
		ORDER BY created_at DESC
	`, r.table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list artifact versions: %w", err)
	}
	defer rows.Close()

	var records []model.ArtifactVersion
	for rows.Next() {
		var a model.ArtifactVersion
		if err := rows.Scan(
			&a.ID,
			&a.Version,
			&a.Filename,
			&a.Description,
			&a.StoragePath,
			&a.MirrorPath,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan artifact version: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list artifact versions: %w", err)
	}

	return records, nil
}

func (r *postgresRepository) FindByVersion(ctx context.Context, version string) (*model.ArtifactVersion, error) {
	// Duplicate labels are legal (append-only history); return the most
	// recent registration for the label.
	query := fmt.Sprintf(`
		SELECT id, version, filename, description, storage_path, mirror_path, created_at
		FROM %s
		WHERE version = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, r.table)

	var a model.ArtifactVersion
	err := r.pool.QueryRow(ctx, query, version).Scan(
		&a.ID,
		&a.Version,
		&a.Filename,
		&a.Description,
		&a.StoragePath,
		&a.MirrorPath,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, artifact.ErrVersionNotFound
		}
		return nil, fmt.Errorf("find artifact version: %w", err)
	}

	return &a, nil
}
