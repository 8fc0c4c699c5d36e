package service

import "fertiplan/pkg/catalog"

type CatalogService interface {
	// Get returns the configuration, materializing defaults for missing tables.
	Get() (*catalog.Snapshot, error)
	Replace(s *catalog.Snapshot) (*catalog.Snapshot, error)
	Reset() error
}
