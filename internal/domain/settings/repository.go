package settings

import "context"

// SettingsRepository is a simple key-value store over JSON blobs.
type SettingsRepository interface {
	// Get returns the raw value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Upsert creates or replaces the value for key.
	Upsert(ctx context.Context, key string, value []byte) error
}
