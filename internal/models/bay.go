package models

import "time"

type Bay struct {
	BayID     string `json:"bay_id"`
	ShopID    string `json:"shop_id,omitempty"`
	Name      string `json:"name"`
	Seq       int    `json:"seq"`
	Available bool   `json:"available"`
	Version   int64  `json:"version"`
}

type WaitlistEntry struct {
	EntryID        string    `json:"entry_id"`
	ShopID         string    `json:"shop_id,omitempty"`
	BayID          string    `json:"bay_id"`
	WorkOrderID    string    `json:"work_order_id"`
	CustomerName   string    `json:"customer_name,omitempty"`
	TruckName      string    `json:"truck_name,omitempty"`
	StatusSnapshot string    `json:"status_snapshot,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
