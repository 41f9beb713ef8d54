package models

// APIResponse is a generic structure for all API responses
type APIResponse struct {
	Status  string      `json:"status"`            // "success" or "error"
	Code    int         `json:"code"`              // HTTP status code (200, 400, 500, etc.)
	Message string      `json:"message,omitempty"` // Human-readable message
	Data    interface{} `json:"data,omitempty"`    // Any response data (can be map, struct, list, etc.)
	Error   *APIError   `json:"error,omitempty"`   // Detailed error info (nil if success)
}

// APIError holds detailed error information
type APIError struct {
	Type    string `json:"type,omitempty"`    // e.g., "ValidationError", "NetworkError"
	Details string `json:"details,omitempty"` // More context about the error
	Field   string `json:"field,omitempty"`   // For validation errors (which field failed)
}

// SyncStatus tells the caller whether a write also reached the remote
// API. Local persistence always succeeds first; Synced=false with a
// warning means the remote leg failed and the record awaits a retry.
type SyncStatus struct {
	Synced  bool   `json:"synced"`
	Warning string `json:"warning,omitempty"`
}

// ReportEnvelope wraps a report together with its sync outcome.
type ReportEnvelope struct {
	Report *ServiceReport `json:"report"`
	Sync   SyncStatus     `json:"sync"`
}

// ReportListEnvelope is the merged listing payload. RemoteAvailable is
// false when the listing was served from the local store alone.
type ReportListEnvelope struct {
	Reports         []*ServiceReport `json:"reports"`
	RemoteAvailable bool             `json:"remoteAvailable"`
}

// NumberEnvelope mirrors the remote numbering endpoints, which keep
// their original Portuguese field names on the wire.
type NumberEnvelope struct {
	Success bool   `json:"success"`
	Number  string `json:"numero"`
}

// CurrentNumberEnvelope mirrors the current-sequence endpoint.
type CurrentNumberEnvelope struct {
	Success bool `json:"success"`
	Current int  `json:"numero_atual"`
}
