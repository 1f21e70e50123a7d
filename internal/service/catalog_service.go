package service

import (
	"context"
	"sort"
	"strings"

	"github.com/af-Athameem/gtruth/internal/entity"
	"github.com/af-Athameem/gtruth/internal/pkg/logger"
	"github.com/af-Athameem/gtruth/pkg/blobstore"
	"github.com/af-Athameem/gtruth/pkg/graph"
	"github.com/af-Athameem/gtruth/pkg/store"
)

// DocumentGateway is the slice of the Graph client the services consume.
type DocumentGateway interface {
	AcquireToken(ctx context.Context) (string, error)
	ResolveSite(ctx context.Context, token string) (string, error)
	ResolveDocumentDrive(ctx context.Context, token, siteID string) (string, error)
	ListFolderChildren(ctx context.Context, token, driveID string) ([]graph.DriveItem, error)
	Upload(ctx context.Context, token, siteID, name string, content []byte) error
}

type ICatalogService interface {
	// Entries fetches the per-backend listings. A failing backend
	// contributes nothing; failures degrade to fewer options, never
	// propagate.
	Entries(ctx context.Context, sess *store.Session) []entity.CatalogEntry
	// Merged deduplicates entries by name, accumulating sources. Where a
	// name appears in both backends the SharePoint metadata wins.
	Merged(entries []entity.CatalogEntry) []entity.CatalogFile
	// Names returns the sorted unique file names for selection.
	Names(entries []entity.CatalogEntry) []string
	// ResolveSources returns every distinct source holding name, sorted.
	// A name found nowhere resolves to the Unknown sentinel, never to an
	// empty list.
	ResolveSources(entries []entity.CatalogEntry, name string) []string
}

type catalogService struct {
	blobs   blobstore.Store
	gateway DocumentGateway
	log     logger.ILogger
}

func NewCatalogService(blobs blobstore.Store, gateway DocumentGateway, log logger.ILogger) ICatalogService {
	return &catalogService{blobs: blobs, gateway: gateway, log: log}
}

func (s *catalogService) Entries(ctx context.Context, sess *store.Session) []entity.CatalogEntry {
	entries := []entity.CatalogEntry{}

	if sess.GraphToken != "" && sess.SiteID != "" {
		if sess.DriveID == "" {
			driveID, err := s.gateway.ResolveDocumentDrive(ctx, sess.GraphToken, sess.SiteID)
			if err != nil {
				s.log.Warn("catalog", "failed to resolve document library", map[string]interface{}{
					"error": err.Error(),
				})
			} else {
				sess.DriveID = driveID
			}
		}
		if sess.DriveID != "" {
			items, err := s.gateway.ListFolderChildren(ctx, sess.GraphToken, sess.DriveID)
			if err != nil {
				s.log.Warn("catalog", "failed to list document library", map[string]interface{}{
					"error": err.Error(),
				})
			}
			for _, item := range items {
				if item.IsFolder() {
					continue
				}
				createdBy := item.CreatedBy.User.DisplayName
				if createdBy == "" {
					createdBy = entity.SourceUnknown
				}
				entries = append(entries, entity.CatalogEntry{
					Name:         item.Name,
					Source:       entity.SourceSharePoint,
					LastModified: item.LastModifiedDateTime,
					CreatedBy:    createdBy,
				})
			}
		}
	}

	objects, err := s.blobs.List(ctx)
	if err != nil {
		s.log.Warn("catalog", "failed to list object store", map[string]interface{}{
			"error": err.Error(),
		})
	}
	for _, obj := range objects {
		entries = append(entries, entity.CatalogEntry{
			Name:         obj.Name,
			Source:       entity.SourceS3,
			LastModified: obj.LastModified,
			CreatedBy:    entity.SourceUnknown,
		})
	}

	return entries
}

func (s *catalogService) Merged(entries []entity.CatalogEntry) []entity.CatalogFile {
	byName := map[string]*entity.CatalogFile{}
	for _, e := range entries {
		existing, ok := byName[e.Name]
		if !ok {
			byName[e.Name] = &entity.CatalogFile{
				Name:         e.Name,
				Sources:      []string{e.Source},
				LastModified: dateOnly(e.LastModified),
				CreatedBy:    e.CreatedBy,
			}
			continue
		}
		// The document service carries real author/modified metadata; it
		// wins over the object store's.
		if e.Source == entity.SourceSharePoint {
			existing.LastModified = dateOnly(e.LastModified)
			existing.CreatedBy = e.CreatedBy
		}
		if !contains(existing.Sources, e.Source) {
			existing.Sources = append(existing.Sources, e.Source)
		}
	}

	files := make([]entity.CatalogFile, 0, len(byName))
	for _, f := range byName {
		sort.Strings(f.Sources)
		files = append(files, *f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files
}

func (s *catalogService) Names(entries []entity.CatalogEntry) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, e := range entries {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *catalogService) ResolveSources(entries []entity.CatalogEntry, name string) []string {
	seen := map[string]bool{}
	sources := []string{}
	for _, e := range entries {
		if e.Name == name && !seen[e.Source] {
			seen[e.Source] = true
			sources = append(sources, e.Source)
		}
	}
	if len(sources) == 0 {
		return []string{entity.SourceUnknown}
	}
	sort.Strings(sources)
	return sources
}

// dateOnly trims a Graph ISO timestamp down to its date part.
func dateOnly(ts string) string {
	if i := strings.Index(ts, "T"); i > 0 {
		return ts[:i]
	}
	return ts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
