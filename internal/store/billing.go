package store

import (
	"math"

	"gms/bay-service/internal/models"
)

// InvoiceTotals derives the billing amounts for a completed work order.
// Subtotal comes from the first recorded cost field: total cost, else labor
// cost, else parts cost, else zero. Amounts are rounded to cents.
func InvoiceTotals(order models.WorkOrder, taxRate float64) (subtotal, taxAmount, total float64) {
	switch {
	case order.TotalCost > 0:
		subtotal = order.TotalCost
	case order.LaborCost > 0:
		subtotal = order.LaborCost
	case order.PartsCost > 0:
		subtotal = order.PartsCost
	}
	subtotal = roundCents(subtotal)
	taxAmount = roundCents(subtotal * taxRate)
	total = roundCents(subtotal + taxAmount)
	return subtotal, taxAmount, total
}

func roundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
