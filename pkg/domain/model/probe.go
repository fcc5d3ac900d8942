package model

// StorageLayout describes what the configured WebDAV URL points at
type StorageLayout string

const (
	// StorageLayoutStorage means archives live directly under the base URL
	StorageLayoutStorage StorageLayout = "storage"
	// StorageLayoutParent means archives live under "zotero/" of the base URL
	StorageLayoutParent StorageLayout = "parent"
)

// ServerProbe is the result of checking the configured WebDAV server
type ServerProbe struct {
	BaseURL string        `json:"base_url"`
	Layout  StorageLayout `json:"layout"`
}
