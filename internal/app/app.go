package app

const (
	Version = "0.1"
	Name    = "noovo"

	// PlatformTag identifies the platform owning a search result.
	PlatformTag = "noovo"
)
