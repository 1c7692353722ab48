package pricing

import (
	"atvtours/internal/domain"
)

const Currency = "USD"

// ComputeBreakdown derives the priced order for the current selection. It is
// pure and total: the same selection and catalog always yield the same
// breakdown, and an unset tour or vehicle contributes a zero-valued line
// instead of an error, so the wizard can preview a running total at any step.
//
// Line order is fixed: tour, vehicle surcharge, then extras in selection
// order.
func ComputeBreakdown(sel domain.BookingSelection, cat *domain.Catalog) domain.PriceBreakdown {
	qty := sel.PartySize
	if qty < 0 {
		qty = 0
	}

	lines := make([]domain.PriceLine, 0, 2+len(sel.ExtraIDs))

	tourLine := domain.PriceLine{Kind: domain.LineTour, Quantity: qty}
	if t, ok := cat.TourByID(sel.TourID); ok {
		tourLine.OptionID = t.ID
		tourLine.Label = t.Name
		tourLine.UnitPrice = t.PricePerPerson
		tourLine.Amount = t.PricePerPerson * domain.Money(qty)
	}
	lines = append(lines, tourLine)

	vehicleLine := domain.PriceLine{Kind: domain.LineVehicleSurcharge, Quantity: qty}
	if v, ok := cat.VehicleByID(sel.VehicleID); ok {
		vehicleLine.OptionID = v.ID
		vehicleLine.Label = v.Name
		vehicleLine.UnitPrice = v.Surcharge
		vehicleLine.Amount = v.Surcharge * domain.Money(qty)
	}
	lines = append(lines, vehicleLine)

	for _, id := range sel.ExtraIDs {
		e, ok := cat.ExtraByID(id)
		if !ok {
			// Selection invariant keeps unknown ids out; tolerate them here
			// rather than fail a speculative preview.
			continue
		}
		lines = append(lines, domain.PriceLine{
			Kind:      domain.LineExtra,
			OptionID:  e.ID,
			Label:     e.Name,
			UnitPrice: e.Price,
			Quantity:  1,
			Amount:    e.Price,
		})
	}

	var total domain.Money
	for _, l := range lines {
		total += l.Amount
	}

	return domain.PriceBreakdown{Currency: Currency, Lines: lines, Total: total}
}
