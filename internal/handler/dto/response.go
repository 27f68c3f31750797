package dto

// APIInfoResponse describes the CCS API version served at the API root.
type APIInfoResponse struct {
	Version    string      `json:"version"`
	VersionURL string      `json:"version_url"`
	Name       string      `json:"name"`
	Provider   ProviderRef `json:"provider"`
}

// ProviderRef identifies the serving implementation.
type ProviderRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// MessageResponse carries a human-readable operation result.
type MessageResponse struct {
	Message string `json:"message"`
}
