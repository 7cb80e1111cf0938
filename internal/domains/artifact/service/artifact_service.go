package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"modelhub-backend/internal/domains/artifact"
	"modelhub-backend/internal/domains/artifact/model"
	"modelhub-backend/internal/infrastructure/mirror"
	"modelhub-backend/internal/infrastructure/storage"
	"modelhub-backend/pkg/logger"
)

// versionLabelLayout formats the server-generated version label from the
// upload time. Two uploads in different seconds get distinct labels.
const versionLabelLayout = "20060102_150405"

// artifactService implements artifact.Service.
type artifactService struct {
	repo   artifact.Repository
	store  storage.ArtifactStore
	mirror mirror.Adapter
	now    func() time.Time
}

func NewArtifactService(repo artifact.Repository, store storage.ArtifactStore, m mirror.Adapter) artifact.Service {
	return &artifactService{
		repo:   repo,
		store:  store,
		mirror: m,
		now:    time.Now,
	}
}

// RegisterUpload runs the registration steps in strict order with no
// rollback:
//  1. resolve the version label
//  2. persist bytes (failure aborts - no catalog record)
//  3. mirror into the external versioning tool (failure logged, swallowed)
//  4. insert the catalog record (failure leaves the stored file orphaned)
func (s *artifactService) RegisterUpload(ctx context.Context, req artifact.UploadRequest) (*model.ArtifactVersion, error) {
	version := req.Version
	if version == "" {
		version = s.now().Format(versionLabelLayout)
	}

	storagePath, err := s.store.Save(ctx, version, req.Filename, req.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", artifact.ErrStorageWrite, err)
	}

	// Best-effort: the mirror tool's absence or misconfiguration must not
	// block registration. The record simply carries no mirror locator.
	var mirrorPath *string
	if locator, err := s.mirror.Mirror(ctx, storagePath); err != nil {
		logger.Warn("artifact mirroring failed", err)
	} else if locator != "" {
		mirrorPath = &locator
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	record := &model.ArtifactVersion{
		ID:          uuid.New(),
		Version:     version,
		Filename:    req.Filename,
		Description: description,
		StoragePath: storagePath,
		MirrorPath:  mirrorPath,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		// The file is already on disk with no catalog record. Accepted
		// inconsistency - no compensating delete.
		return nil, fmt.Errorf("%w: %v", artifact.ErrCatalogWrite, err)
	}

	return record, nil
}

func (s *artifactService) ListVersions(ctx context.Context) ([]model.ArtifactVersionDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	dtos := make([]model.ArtifactVersionDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, records[i].ToDTO())
	}
	return dtos, nil
}

func (s *artifactService) GetVersion(ctx context.Context, version string) (*model.ArtifactVersionDTO, error) {
	record, err := s.repo.FindByVersion(ctx, version)
	if err != nil {
		return nil, err
	}

	dto := record.ToDTO()
	return &dto, nil
}
