package dto

// BackendResult is one backend's verdict for one uploaded file.
type BackendResult struct {
	Backend string `json:"backend"`
	Success bool   `json:"success"`
}

// FileUploadResult summarizes one file across both backends. RenamedFrom is
// set when the file was renamed to avoid clobbering an existing name.
type FileUploadResult struct {
	FileName    string          `json:"file_name"`
	RenamedFrom string          `json:"renamed_from,omitempty"`
	Backends    []BackendResult `json:"backends"`
	Success     bool            `json:"success"`
}

// UploadSummary aggregates a multi-file upload. A failure on one file never
// blocks the others.
type UploadSummary struct {
	Total      int                `json:"total"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
	Results    []FileUploadResult `json:"results"`
}
