package repository

import "fertiplan/pkg/catalog"

type CatalogRepository interface {
	// Load returns the stored tables as they are; empty tables stay empty.
	Load() (*catalog.Snapshot, error)
	ReplaceAll(s *catalog.Snapshot) error
	// Reset wipes configuration, plans and tracking.
	Reset() error
}
