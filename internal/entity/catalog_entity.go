package entity

// Source labels for the two file backends. SourceUnknown is the sentinel a
// reference resolves to when its document is in neither listing.
const (
	SourceS3         = "S3"
	SourceSharePoint = "SharePoint"
	SourceUnknown    = "Unknown"
)

// CatalogEntry is one (name, source) row as reported by a single backend.
// Never persisted, recomputed per view.
type CatalogEntry struct {
	Name         string `json:"name"`
	Source       string `json:"source"`
	LastModified string `json:"last_modified"`
	CreatedBy    string `json:"created_by"`
}

// CatalogFile is a merged, deduplicated-by-name row for the file table. One
// name may accumulate several sources.
type CatalogFile struct {
	Name         string   `json:"name"`
	Sources      []string `json:"sources"`
	LastModified string   `json:"last_modified"`
	CreatedBy    string   `json:"created_by"`
}
