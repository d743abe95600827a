package storage

// BlobStore is the external blob-storage collaborator. The API never uploads
// bytes itself: clients upload directly to the provider and register the
// resulting object metadata. Deletes are best-effort side effects; callers
// log failures and never fail the enclosing operation on them.
type BlobStore interface {
	// Provider identifies the backing service, stored on TaskFile rows.
	Provider() string

	// DeleteEnabled reports whether delete credentials are configured.
	// Deletes are only attempted when this is true.
	DeleteEnabled() bool

	// Delete removes an object by its provider-assigned id.
	Delete(publicID string) error
}

// NoopStore is a BlobStore with deletes disabled. Used in tests and when no
// storage credentials are configured.
type NoopStore struct{}

func (NoopStore) Provider() string             { return "none" }
func (NoopStore) DeleteEnabled() bool          { return false }
func (NoopStore) Delete(publicID string) error { return nil }
