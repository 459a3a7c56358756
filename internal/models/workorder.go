package models

import "time"

type WorkOrder struct {
	WorkOrderID    string     `json:"work_order_id"`
	ShopID         string     `json:"shop_id,omitempty"`
	CustomerID     string     `json:"customer_id"`
	TruckID        *string    `json:"truck_id,omitempty"`
	BayID          *string    `json:"bay_id,omitempty"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority,omitempty"`
	Description    string     `json:"description,omitempty"`
	EstimatedHours float64    `json:"estimated_hours,omitempty"`
	LaborCost      float64    `json:"labor_cost,omitempty"`
	PartsCost      float64    `json:"parts_cost,omitempty"`
	TotalCost      float64    `json:"total_cost,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	RequestID      string     `json:"request_id,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)
