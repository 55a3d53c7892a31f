package domain

import "context"

// CatalogSource resolves a restaurant id to its catalog. Implementations
// can be directory-backed, in-memory, or remote.
type CatalogSource interface {
	Get(ctx context.Context, id string) (*Catalog, error)
	List(ctx context.Context) ([]string, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or a terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
