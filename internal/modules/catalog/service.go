package catalog

import "atvtours/internal/domain"

// Service exposes the read-only reference catalog. The catalog outlives any
// checkout session and is shared across all of them.
type Service struct {
	catalog *domain.Catalog
}

func NewService(catalog *domain.Catalog) *Service {
	return &Service{catalog: catalog}
}

func (s *Service) Tours() []domain.TourOption       { return s.catalog.Tours() }
func (s *Service) Vehicles() []domain.VehicleOption { return s.catalog.Vehicles() }
func (s *Service) Extras() []domain.ExtraOption     { return s.catalog.Extras() }
