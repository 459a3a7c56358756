package store

import (
	"context"
	"encoding/json"
	"time"

	"gms/bay-service/internal/models"
)

type CreateBayInput struct {
	RequestID string
	ShopID    string
	Name      string
}

type CreateWorkOrderInput struct {
	RequestID      string
	ShopID         string
	CustomerID     string
	TruckID        string
	BayID          string
	Priority       string
	Description    string
	EstimatedHours float64
	LaborCost      float64
	PartsCost      float64
	TotalCost      float64
	CustomerName   string
	TruckName      string
	CreatedAt      time.Time
}

type BayActionInput struct {
	ShopID      string
	BayID       string
	WorkOrderID string
	OccurredAt  time.Time
}

type EnqueueInput struct {
	RequestID    string
	ShopID       string
	BayID        string
	WorkOrderID  string
	CustomerName string
	TruckName    string
	EnqueuedAt   time.Time
}

type Store interface {
	CreateBay(ctx context.Context, input CreateBayInput) (models.Bay, bool, error)
	GetBay(ctx context.Context, shopID, bayID string) (models.Bay, bool, error)
	ListBays(ctx context.Context, shopID string) ([]models.Bay, error)
	RemoveBay(ctx context.Context, shopID, bayID string) error
	RecommendBay(ctx context.Context, shopID, hint string) (models.Bay, bool, error)

	Enqueue(ctx context.Context, input EnqueueInput) (models.WaitlistEntry, bool, error)
	Dequeue(ctx context.Context, shopID, bayID, workOrderID string) error
	ListWaitlist(ctx context.Context, shopID, bayID string) ([]models.WaitlistEntry, error)
	Promote(ctx context.Context, input BayActionInput) (models.WorkOrder, error)

	CreateWorkOrder(ctx context.Context, input CreateWorkOrderInput) (models.WorkOrder, bool, error)
	GetWorkOrder(ctx context.Context, shopID, workOrderID string) (models.WorkOrder, bool, error)
	ListWorkOrders(ctx context.Context, shopID, status string) ([]models.WorkOrder, error)
	DeleteWorkOrder(ctx context.Context, shopID, workOrderID string) error
	CompleteAndBill(ctx context.Context, input BayActionInput) (models.WorkOrder, *models.Invoice, error)
	ClearBay(ctx context.Context, input BayActionInput) (models.Bay, error)

	ListInvoices(ctx context.Context, shopID string) ([]models.Invoice, error)
	ListOutboxEvents(ctx context.Context, shopID string, after time.Time, limit int) ([]OutboxEvent, error)
	GetSession(ctx context.Context, sessionID string) (Session, error)
}

type Session struct {
	SessionID string
	UserID    string
	ShopID    string
	Role      string
	ExpiresAt time.Time
}

type OutboxEvent struct {
	EventID   string          `json:"event_id"`
	ShopID    string          `json:"shop_id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
