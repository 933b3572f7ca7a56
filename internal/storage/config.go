package storage

// Config holds storage configuration
type Config struct {
	UploadDir string // Root directory for stored files
	BaseURL   string // Server base URL used to build public URLs
}

// New returns the local filesystem store for cfg.
func New(cfg Config) (ImageStore, error) {
	return NewLocalStorage(cfg.BaseURL, cfg.UploadDir)
}
