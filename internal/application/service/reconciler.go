package service

import (
	"math"

	"github.com/feedworks/feedmill-api/pkg/apperror"
)

// ReconcileInput is the monetary shape of an order before validation.
// All paise fields are exact integers; the discount is a percentage.
type ReconcileInput struct {
	Quantities      []int   // one per line item
	UnitPrices      []int64 // paise, parallel to Quantities
	DiscountPercent float64
	AdvanceAmount   int64 // paise
}

// ReconcileResult carries the server-computed amounts. Client-sent totals
// are never trusted; these values are what gets persisted.
type ReconcileResult struct {
	Subtotal      int64 // paise, before discount
	TotalAmount   int64 // paise, after discount
	AdvanceAmount int64 // paise
	DueAmount     int64 // paise
	LineTotals    []int64
}

// ReconcileAmounts recomputes an order's money from its line items and
// enforces the monetary invariants. Rounding happens exactly once, on the
// discounted total.
func ReconcileAmounts(input ReconcileInput) (*ReconcileResult, error) {
	if len(input.Quantities) == 0 {
		return nil, apperror.NewInvalidAmountError("Order must have at least one item")
	}
	if len(input.Quantities) != len(input.UnitPrices) {
		return nil, apperror.NewInvalidAmountError("Line item quantities and prices do not match")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, apperror.NewInvalidAmountError("Discount percent must be between 0 and 100")
	}
	if input.AdvanceAmount < 0 {
		return nil, apperror.NewInvalidAmountError("Advance amount cannot be negative")
	}

	var subtotal int64
	lineTotals := make([]int64, len(input.Quantities))
	for i, qty := range input.Quantities {
		if qty <= 0 {
			return nil, apperror.NewInvalidAmountError("Item quantity must be positive")
		}
		if input.UnitPrices[i] < 0 {
			return nil, apperror.NewInvalidAmountError("Unit price cannot be negative")
		}
		lineTotals[i] = input.UnitPrices[i] * int64(qty)
		subtotal += lineTotals[i]
	}

	total := int64(math.Round(float64(subtotal) * (1 - input.DiscountPercent/100)))

	if input.AdvanceAmount > total {
		return nil, apperror.NewInvalidAmountError("Advance amount cannot exceed order total")
	}

	due := total - input.AdvanceAmount
	if due < 0 {
		due = 0
	}

	return &ReconcileResult{
		Subtotal:      subtotal,
		TotalAmount:   total,
		AdvanceAmount: input.AdvanceAmount,
		DueAmount:     due,
		LineTotals:    lineTotals,
	}, nil
}
