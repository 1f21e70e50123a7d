package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/af-Athameem/gtruth/internal/dto"
	"github.com/af-Athameem/gtruth/internal/entity"
	"github.com/af-Athameem/gtruth/internal/pkg/logger"
	"github.com/af-Athameem/gtruth/pkg/blobstore"
	"github.com/af-Athameem/gtruth/pkg/store"
)

type IFileService interface {
	// UniqueName returns name, or a " copy(n)" variant when the merged
	// catalog already knows the name, so uploads never clobber silently.
	UniqueName(existing []string, name string) string
	// Upload pushes one file to both backends. A backend failure is
	// reported per backend and never blocks the other.
	Upload(ctx context.Context, sess *store.Session, name string, content []byte) []dto.BackendResult
	// UploadAll handles a batch, renaming each file against the catalog
	// snapshot plus the names already claimed within the batch.
	UploadAll(ctx context.Context, sess *store.Session, files []UploadInput) dto.UploadSummary
}

// UploadInput is one file of a batch upload.
type UploadInput struct {
	Name    string
	Content []byte
}

type fileService struct {
	blobs   blobstore.Store
	gateway DocumentGateway
	catalog ICatalogService
	log     logger.ILogger
}

func NewFileService(blobs blobstore.Store, gateway DocumentGateway, catalog ICatalogService, log logger.ILogger) IFileService {
	return &fileService{blobs: blobs, gateway: gateway, catalog: catalog, log: log}
}

func (s *fileService) UniqueName(existing []string, name string) string {
	taken := map[string]bool{}
	for _, n := range existing {
		taken[n] = true
	}
	if !taken[name] {
		return name
	}

	base := name
	ext := ""
	if i := strings.LastIndex(name, "."); i > 0 {
		base = name[:i]
		ext = name[i:]
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s copy(%d)%s", base, counter, ext)
		if !taken[candidate] {
			return candidate
		}
	}
}

func (s *fileService) Upload(ctx context.Context, sess *store.Session, name string, content []byte) []dto.BackendResult {
	results := []dto.BackendResult{}

	if sess.GraphToken != "" && sess.SiteID != "" {
		err := s.gateway.Upload(ctx, sess.GraphToken, sess.SiteID, name, content)
		if err != nil {
			s.log.Warn("file", "document service upload failed", map[string]interface{}{
				"name":  name,
				"error": err.Error(),
			})
		}
		results = append(results, dto.BackendResult{
			Backend: entity.SourceSharePoint,
			Success: err == nil,
		})
	}

	err := s.blobs.Upload(ctx, name, content)
	if err != nil {
		s.log.Warn("file", "object store upload failed", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
	}
	results = append(results, dto.BackendResult{
		Backend: entity.SourceS3,
		Success: err == nil,
	})

	return results
}

func (s *fileService) UploadAll(ctx context.Context, sess *store.Session, files []UploadInput) dto.UploadSummary {
	existing := s.catalog.Names(s.catalog.Entries(ctx, sess))

	summary := dto.UploadSummary{Total: len(files)}
	for _, file := range files {
		name := s.UniqueName(existing, file.Name)
		existing = append(existing, name)

		result := dto.FileUploadResult{FileName: name}
		if name != file.Name {
			result.RenamedFrom = file.Name
		}
		result.Backends = s.Upload(ctx, sess, name, file.Content)

		for _, b := range result.Backends {
			if b.Success {
				result.Success = true
				break
			}
		}
		if result.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, result)
	}
	return summary
}
