package models

import "time"

type Invoice struct {
	InvoiceID   string    `json:"invoice_id"`
	ShopID      string    `json:"shop_id,omitempty"`
	WorkOrderID *string   `json:"work_order_id,omitempty"`
	CustomerID  string    `json:"customer_id"`
	Subtotal    float64   `json:"subtotal"`
	TaxRate     float64   `json:"tax_rate"`
	TaxAmount   float64   `json:"tax_amount"`
	Total       float64   `json:"total"`
	Status      string    `json:"status"`
	DueAt       time.Time `json:"due_at"`
	CreatedAt   time.Time `json:"created_at"`
}

const InvoiceStatusOpen = "open"
