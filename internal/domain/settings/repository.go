package settings

import "context"

// Repository defines settings persistence.
type Repository interface {
	// Get retrieves a setting by key.
	Get(ctx context.Context, key string) (*Setting, error)

	// List retrieves all settings.
	List(ctx context.Context) ([]*Setting, error)

	// Upsert inserts or replaces a setting, bumping its version.
	Upsert(ctx context.Context, setting *Setting) error

	// Delete removes a setting.
	Delete(ctx context.Context, key string) error
}
