package catalog

import "atvtours/internal/domain"

// Seed builds the storefront's reference catalog. Amounts are cents.
func Seed() *domain.Catalog {
	tours := []domain.TourOption{
		{ID: "desert-discovery", Name: "Desert Discovery", DurationHours: 3, PricePerPerson: 60000, Difficulty: domain.DifficultyEasy},
		{ID: "canyon-explorer", Name: "Canyon Explorer", DurationHours: 5, PricePerPerson: 85000, Difficulty: domain.DifficultyModerate},
		{ID: "dune-rush", Name: "Dune Rush", DurationHours: 4, PricePerPerson: 95000, Difficulty: domain.DifficultyExtreme},
		{ID: "sunset-safari", Name: "Sunset Safari", DurationHours: 2, PricePerPerson: 45000, Difficulty: domain.DifficultyEasy},
	}
	vehicles := []domain.VehicleOption{
		{ID: "standard-atv", Name: "Standard ATV", PowerClass: "standard", Surcharge: 0},
		{ID: "sport-atv", Name: "Sport ATV", PowerClass: "sport", Surcharge: 5000},
		{ID: "utv-sxs", Name: "UTV Side-by-Side", PowerClass: "utility", Surcharge: 9000},
	}
	extras := []domain.ExtraOption{
		{ID: "photo-package", Name: "Photo Package", Price: 15000, Description: "Professional photos of your ride delivered within 48 hours"},
		{ID: "lunch", Name: "Lunch & Refreshments", Price: 10000, Description: "Packed lunch, snacks and water for the whole party"},
		{ID: "sandboard", Name: "Sandboard Rental", Price: 7500, Description: "Sandboard for the dune stops"},
		{ID: "hotel-pickup", Name: "Hotel Pickup", Price: 5000, Description: "Round-trip transfer from your hotel"},
	}
	return domain.NewCatalog(tours, vehicles, extras, "standard-atv")
}
