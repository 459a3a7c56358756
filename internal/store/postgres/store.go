package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gms/bay-service/internal/models"
	"gms/bay-service/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool           *pgxpool.Pool
	taxRate        float64
	invoiceDueDays int
}

type Options struct {
	TaxRate        float64
	InvoiceDueDays int
}

func NewStore(pool *pgxpool.Pool, options Options) *Store {
	taxRate := options.TaxRate
	if taxRate < 0 {
		taxRate = 0
	}
	dueDays := options.InvoiceDueDays
	if dueDays <= 0 {
		dueDays = 30
	}
	return &Store{
		pool:           pool,
		taxRate:        taxRate,
		invoiceDueDays: dueDays,
	}
}

func (s *Store) CreateBay(ctx context.Context, input store.CreateBayInput) (models.Bay, bool, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Bay{}, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	existing, found, err := findBayByRequestID(ctx, tx, input.RequestID)
	if err != nil {
		return models.Bay{}, false, err
	}
	if found {
		if err = tx.Commit(ctx); err != nil {
			return models.Bay{}, false, err
		}
		return existing, false, nil
	}

	var taken bool
	row := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bays WHERE shop_id = $1 AND lower(name) = lower($2)
		)
	`, input.ShopID, input.Name)
	if err = row.Scan(&taken); err != nil {
		return models.Bay{}, false, err
	}
	if taken {
		err = store.ErrDuplicateBayName
		return models.Bay{}, false, err
	}

	var seq int
	row = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM bays WHERE shop_id = $1
	`, input.ShopID)
	if err = row.Scan(&seq); err != nil {
		return models.Bay{}, false, err
	}

	bay := models.Bay{
		BayID:     uuid.NewString(),
		ShopID:    input.ShopID,
		Name:      input.Name,
		Seq:       seq,
		Available: true,
	}
	row = tx.QueryRow(ctx, `
		INSERT INTO bays (bay_id, request_id, shop_id, name, seq, available, version)
		VALUES ($1, $2, $3, $4, $5, TRUE, 0)
		ON CONFLICT (request_id) DO NOTHING
		RETURNING bay_id, seq, version
	`, bay.BayID, input.RequestID, input.ShopID, input.Name, seq)
	if err = row.Scan(&bay.BayID, &bay.Seq, &bay.Version); err != nil {
		return models.Bay{}, false, err
	}

	if err = insertOutboxEvent(ctx, tx, input.ShopID, "bay.created", bayEventPayload(bay, "")); err != nil {
		return models.Bay{}, false, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Bay{}, false, err
	}

	return bay, true, nil
}

func (s *Store) GetBay(ctx context.Context, shopID, bayID string) (models.Bay, bool, error) {
	var bay models.Bay
	row := s.pool.QueryRow(ctx, `
		SELECT bay_id, shop_id, name, seq, available, version
		FROM bays
		WHERE bay_id = $1 AND shop_id = $2
	`, bayID, shopID)
	if err := row.Scan(&bay.BayID, &bay.ShopID, &bay.Name, &bay.Seq, &bay.Available, &bay.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bay{}, false, store.ErrBayNotFound
		}
		return models.Bay{}, false, err
	}
	return bay, true, nil
}

func (s *Store) ListBays(ctx context.Context, shopID string) ([]models.Bay, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT bay_id, shop_id, name, seq, available, version
		FROM bays
		WHERE shop_id = $1
		ORDER BY seq ASC
	`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bays []models.Bay
	for rows.Next() {
		var bay models.Bay
		if err := rows.Scan(&bay.BayID, &bay.ShopID, &bay.Name, &bay.Seq, &bay.Available, &bay.Version); err != nil {
			return nil, err
		}
		bays = append(bays, bay)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bays, nil
}

func (s *Store) RemoveBay(ctx context.Context, shopID, bayID string) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = getBayForUpdate(ctx, tx, shopID, bayID); err != nil {
		return err
	}

	var active bool
	row := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM work_orders WHERE bay_id = $1 AND status <> $2
		)
	`, bayID, models.StatusCompleted)
	if err = row.Scan(&active); err != nil {
		return err
	}
	if active {
		err = store.ErrBayHasActiveWorkOrder
		return err
	}

	var waiting bool
	row = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM waitlist_entries WHERE bay_id = $1
		)
	`, bayID)
	if err = row.Scan(&waiting); err != nil {
		return err
	}
	if waiting {
		err = store.ErrWaitlistNotEmpty
		return err
	}

	if _, err = tx.Exec(ctx, `
		DELETE FROM bays WHERE bay_id = $1 AND shop_id = $2
	`, bayID, shopID); err != nil {
		return err
	}

	if err = insertOutboxEvent(ctx, tx, shopID, "bay.removed", map[string]string{
		"shop_id": shopID,
		"bay_id":  bayID,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) RecommendBay(ctx context.Context, shopID, hint string) (models.Bay, bool, error) {
	bays, err := s.ListBays(ctx, shopID)
	if err != nil {
		return models.Bay{}, false, err
	}
	bay, ok := store.MatchBay(bays, hint)
	return bay, ok, nil
}

func (s *Store) CreateWorkOrder(ctx context.Context, input store.CreateWorkOrderInput) (models.WorkOrder, bool, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.WorkOrder{}, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	existing, found, err := findWorkOrderByRequestID(ctx, tx, input.RequestID)
	if err != nil {
		return models.WorkOrder{}, false, err
	}
	if found {
		if err = tx.Commit(ctx); err != nil {
			return models.WorkOrder{}, false, err
		}
		return existing, false, nil
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var assignedBay *models.Bay
	waitlisted := false
	if input.BayID != "" {
		var bay models.Bay
		bay, err = getBayForUpdate(ctx, tx, input.ShopID, input.BayID)
		if err != nil {
			return models.WorkOrder{}, false, err
		}
		if bay.Available {
			if err = occupyBay(ctx, tx, bay); err != nil {
				return models.WorkOrder{}, false, err
			}
			assignedBay = &bay
		} else {
			waitlisted = true
		}
	}

	order := models.WorkOrder{
		WorkOrderID:    uuid.NewString(),
		ShopID:         input.ShopID,
		CustomerID:     input.CustomerID,
		Status:         models.StatusPending,
		Priority:       input.Priority,
		Description:    input.Description,
		EstimatedHours: input.EstimatedHours,
		LaborCost:      input.LaborCost,
		PartsCost:      input.PartsCost,
		TotalCost:      input.TotalCost,
		CreatedAt:      createdAt,
		RequestID:      input.RequestID,
	}
	if input.TruckID != "" {
		truckID := input.TruckID
		order.TruckID = &truckID
	}
	if assignedBay != nil {
		bayID := assignedBay.BayID
		order.BayID = &bayID
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO work_orders (
			work_order_id, request_id, shop_id, customer_id, truck_id, bay_id,
			status, priority, description, estimated_hours, labor_cost, parts_cost, total_cost, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (request_id) DO NOTHING
		RETURNING work_order_id, status, created_at
	`, order.WorkOrderID, input.RequestID, input.ShopID, input.CustomerID, nullIfEmpty(input.TruckID),
		nullBayRef(order.BayID), order.Status, input.Priority, input.Description,
		input.EstimatedHours, input.LaborCost, input.PartsCost, input.TotalCost, createdAt)
	if err = row.Scan(&order.WorkOrderID, &order.Status, &order.CreatedAt); err != nil {
		return models.WorkOrder{}, false, err
	}

	if waitlisted {
		entry := models.WaitlistEntry{
			EntryID:        uuid.NewString(),
			ShopID:         input.ShopID,
			BayID:          input.BayID,
			WorkOrderID:    order.WorkOrderID,
			CustomerName:   input.CustomerName,
			TruckName:      input.TruckName,
			StatusSnapshot: order.Status,
			CreatedAt:      createdAt,
		}
		if err = insertWaitlistEntry(ctx, tx, input.RequestID, entry); err != nil {
			return models.WorkOrder{}, false, err
		}
		if err = insertOutboxEvent(ctx, tx, input.ShopID, "waitlist.enqueued", entryEventPayload(entry)); err != nil {
			return models.WorkOrder{}, false, err
		}
	}

	if err = insertOutboxEvent(ctx, tx, input.ShopID, "workorder.created", orderEventPayload(order)); err != nil {
		return models.WorkOrder{}, false, err
	}
	if assignedBay != nil {
		assignedBay.Available = false
		if err = insertOutboxEvent(ctx, tx, input.ShopID, "bay.occupied", bayEventPayload(*assignedBay, order.WorkOrderID)); err != nil {
			return models.WorkOrder{}, false, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return models.WorkOrder{}, false, err
	}

	return order, true, nil
}

func (s *Store) GetWorkOrder(ctx context.Context, shopID, workOrderID string) (models.WorkOrder, bool, error) {
	order, err := getWorkOrderByID(ctx, s.pool, shopID, workOrderID)
	if err != nil {
		return models.WorkOrder{}, false, err
	}
	return order, true, nil
}

func (s *Store) ListWorkOrders(ctx context.Context, shopID, status string) ([]models.WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE shop_id = $1
	`
	args := []interface{}{shopID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.WorkOrder
	for rows.Next() {
		order, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) DeleteWorkOrder(ctx context.Context, shopID, workOrderID string) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	order, err := getWorkOrderForUpdate(ctx, tx, shopID, workOrderID)
	if err != nil {
		return err
	}
	if !store.ValidTransition("delete", order.Status) {
		err = store.ErrInvalidState
		return err
	}

	if order.BayID != nil {
		if err = freeBay(ctx, tx, shopID, *order.BayID); err != nil {
			return err
		}
	}

	// Entries this work order holds on any bay go with it; entries queued by
	// other work orders stay put.
	if _, err = tx.Exec(ctx, `
		DELETE FROM waitlist_entries WHERE shop_id = $1 AND work_order_id = $2
	`, shopID, workOrderID); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `
		DELETE FROM work_orders WHERE shop_id = $1 AND work_order_id = $2
	`, shopID, workOrderID); err != nil {
		return err
	}

	if err = insertOutboxEvent(ctx, tx, shopID, "workorder.deleted", orderEventPayload(order)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) CompleteAndBill(ctx context.Context, input store.BayActionInput) (models.WorkOrder, *models.Invoice, error) {
	order, err := s.completeOccupant(ctx, input)
	if err != nil {
		return models.WorkOrder{}, nil, err
	}

	// Completion is already committed; a billing failure is reported, never
	// rolled back.
	invoice, err := s.createInvoice(ctx, order)
	if err != nil {
		return order, nil, fmt.Errorf("%w: %v", store.ErrBillingFailed, err)
	}
	return order, &invoice, nil
}

func (s *Store) completeOccupant(ctx context.Context, input store.BayActionInput) (models.WorkOrder, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.WorkOrder{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	bay, err := getBayForUpdate(ctx, tx, input.ShopID, input.BayID)
	if err != nil {
		return models.WorkOrder{}, err
	}

	completedAt := input.OccurredAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	row := tx.QueryRow(ctx, `
		UPDATE work_orders
		SET status = $1, completed_at = $2, bay_id = NULL
		WHERE shop_id = $3 AND bay_id = $4 AND status <> $1
		RETURNING `+workOrderColumns, models.StatusCompleted, completedAt, input.ShopID, input.BayID)
	order, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrNoActiveWorkOrder
		}
		return models.WorkOrder{}, err
	}

	if err = freeBayRow(ctx, tx, bay); err != nil {
		return models.WorkOrder{}, err
	}

	if err = insertOutboxEvent(ctx, tx, input.ShopID, "workorder.completed", orderEventPayload(order)); err != nil {
		return models.WorkOrder{}, err
	}
	bay.Available = true
	if err = insertOutboxEvent(ctx, tx, input.ShopID, "bay.freed", bayEventPayload(bay, order.WorkOrderID)); err != nil {
		return models.WorkOrder{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.WorkOrder{}, err
	}
	return order, nil
}

func (s *Store) createInvoice(ctx context.Context, order models.WorkOrder) (models.Invoice, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Invoice{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	subtotal, taxAmount, total := store.InvoiceTotals(order, s.taxRate)
	createdAt := time.Now().UTC()
	if order.CompletedAt != nil {
		createdAt = *order.CompletedAt
	}
	workOrderID := order.WorkOrderID
	invoice := models.Invoice{
		InvoiceID:   uuid.NewString(),
		ShopID:      order.ShopID,
		WorkOrderID: &workOrderID,
		CustomerID:  order.CustomerID,
		Subtotal:    subtotal,
		TaxRate:     s.taxRate,
		TaxAmount:   taxAmount,
		Total:       total,
		Status:      models.InvoiceStatusOpen,
		DueAt:       createdAt.AddDate(0, 0, s.invoiceDueDays),
		CreatedAt:   createdAt,
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO invoices (
			invoice_id, shop_id, work_order_id, customer_id,
			subtotal, tax_rate, tax_amount, total, status, due_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, invoice.InvoiceID, invoice.ShopID, workOrderID, invoice.CustomerID,
		subtotal, s.taxRate, taxAmount, total, invoice.Status, invoice.DueAt, createdAt); err != nil {
		return models.Invoice{}, err
	}

	if err = insertOutboxEvent(ctx, tx, order.ShopID, "invoice.created", invoiceEventPayload(invoice)); err != nil {
		return models.Invoice{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Invoice{}, err
	}
	return invoice, nil
}

func (s *Store) ClearBay(ctx context.Context, input store.BayActionInput) (models.Bay, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Bay{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	bay, err := getBayForUpdate(ctx, tx, input.ShopID, input.BayID)
	if err != nil {
		return models.Bay{}, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE work_orders
		SET bay_id = NULL
		WHERE shop_id = $1 AND bay_id = $2 AND status <> $3
	`, input.ShopID, input.BayID, models.StatusCompleted); err != nil {
		return models.Bay{}, err
	}

	// Already-available bays clear as a no-op.
	if !bay.Available {
		if err = freeBayRow(ctx, tx, bay); err != nil {
			return models.Bay{}, err
		}
	}
	bay.Available = true

	if err = insertOutboxEvent(ctx, tx, input.ShopID, "bay.cleared", bayEventPayload(bay, "")); err != nil {
		return models.Bay{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Bay{}, err
	}
	return bay, nil
}

func (s *Store) Enqueue(ctx context.Context, input store.EnqueueInput) (models.WaitlistEntry, bool, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.WaitlistEntry{}, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	existing, found, err := findEntryByRequestID(ctx, tx, input.RequestID)
	if err != nil {
		return models.WaitlistEntry{}, false, err
	}
	if found {
		if err = tx.Commit(ctx); err != nil {
			return models.WaitlistEntry{}, false, err
		}
		return existing, false, nil
	}

	if _, err = getBayForUpdate(ctx, tx, input.ShopID, input.BayID); err != nil {
		return models.WaitlistEntry{}, false, err
	}

	order, err := getWorkOrderForUpdate(ctx, tx, input.ShopID, input.WorkOrderID)
	if err != nil {
		return models.WaitlistEntry{}, false, err
	}
	if order.BayID != nil {
		err = store.ErrWorkOrderAssigned
		return models.WaitlistEntry{}, false, err
	}
	if !store.ValidTransition("enqueue", order.Status) {
		err = store.ErrInvalidState
		return models.WaitlistEntry{}, false, err
	}

	enqueuedAt := input.EnqueuedAt
	if enqueuedAt.IsZero() {
		enqueuedAt = time.Now().UTC()
	}
	entry := models.WaitlistEntry{
		EntryID:        uuid.NewString(),
		ShopID:         input.ShopID,
		BayID:          input.BayID,
		WorkOrderID:    input.WorkOrderID,
		CustomerName:   input.CustomerName,
		TruckName:      input.TruckName,
		StatusSnapshot: order.Status,
		CreatedAt:      enqueuedAt,
	}
	if err = insertWaitlistEntry(ctx, tx, input.RequestID, entry); err != nil {
		return models.WaitlistEntry{}, false, err
	}

	if err = insertOutboxEvent(ctx, tx, input.ShopID, "waitlist.enqueued", entryEventPayload(entry)); err != nil {
		return models.WaitlistEntry{}, false, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.WaitlistEntry{}, false, err
	}
	return entry, true, nil
}

func (s *Store) Dequeue(ctx context.Context, shopID, bayID, workOrderID string) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		DELETE FROM waitlist_entries
		WHERE shop_id = $1 AND bay_id = $2 AND work_order_id = $3
	`, shopID, bayID, workOrderID)
	if err != nil {
		return err
	}
	// Removing an absent entry is success, not corruption.
	if tag.RowsAffected() > 0 {
		if err = insertOutboxEvent(ctx, tx, shopID, "waitlist.removed", map[string]string{
			"shop_id":       shopID,
			"bay_id":        bayID,
			"work_order_id": workOrderID,
		}); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) ListWaitlist(ctx context.Context, shopID, bayID string) ([]models.WaitlistEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT entry_id, shop_id, bay_id, work_order_id, customer_name, truck_name, status_snapshot, created_at
		FROM waitlist_entries
		WHERE shop_id = $1 AND bay_id = $2
		ORDER BY created_at ASC, entry_id ASC
	`, shopID, bayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.WaitlistEntry
	for rows.Next() {
		var entry models.WaitlistEntry
		if err := rows.Scan(&entry.EntryID, &entry.ShopID, &entry.BayID, &entry.WorkOrderID,
			&entry.CustomerName, &entry.TruckName, &entry.StatusSnapshot, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) Promote(ctx context.Context, input store.BayActionInput) (models.WorkOrder, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.WorkOrder{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	bay, err := getBayForUpdate(ctx, tx, input.ShopID, input.BayID)
	if err != nil {
		return models.WorkOrder{}, err
	}
	if !bay.Available {
		err = store.ErrBayOccupied
		return models.WorkOrder{}, err
	}

	var entryID string
	row := tx.QueryRow(ctx, `
		SELECT entry_id FROM waitlist_entries
		WHERE shop_id = $1 AND bay_id = $2 AND work_order_id = $3
	`, input.ShopID, input.BayID, input.WorkOrderID)
	if err = row.Scan(&entryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrEntryNotFound
		}
		return models.WorkOrder{}, err
	}

	order, err := getWorkOrderForUpdate(ctx, tx, input.ShopID, input.WorkOrderID)
	if err != nil {
		return models.WorkOrder{}, err
	}
	if order.BayID != nil {
		err = store.ErrWorkOrderAssigned
		return models.WorkOrder{}, err
	}
	if !store.ValidTransition("promote", order.Status) {
		err = store.ErrInvalidState
		return models.WorkOrder{}, err
	}

	if err = occupyBay(ctx, tx, bay); err != nil {
		return models.WorkOrder{}, err
	}

	row = tx.QueryRow(ctx, `
		UPDATE work_orders
		SET bay_id = $1, status = $2
		WHERE shop_id = $3 AND work_order_id = $4
		RETURNING `+workOrderColumns, input.BayID, models.StatusInProgress, input.ShopID, input.WorkOrderID)
	order, err = scanWorkOrder(row)
	if err != nil {
		return models.WorkOrder{}, err
	}

	if _, err = tx.Exec(ctx, `
		DELETE FROM waitlist_entries WHERE entry_id = $1
	`, entryID); err != nil {
		return models.WorkOrder{}, err
	}

	if err = insertOutboxEvent(ctx, tx, input.ShopID, "waitlist.promoted", orderEventPayload(order)); err != nil {
		return models.WorkOrder{}, err
	}
	bay.Available = false
	if err = insertOutboxEvent(ctx, tx, input.ShopID, "bay.occupied", bayEventPayload(bay, order.WorkOrderID)); err != nil {
		return models.WorkOrder{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.WorkOrder{}, err
	}
	return order, nil
}

func (s *Store) ListInvoices(ctx context.Context, shopID string) ([]models.Invoice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT invoice_id, shop_id, work_order_id, customer_id,
			subtotal, tax_rate, tax_amount, total, status, due_at, created_at
		FROM invoices
		WHERE shop_id = $1
		ORDER BY created_at DESC
	`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		var workOrderIDNull sql.NullString
		if err := rows.Scan(&invoice.InvoiceID, &invoice.ShopID, &workOrderIDNull, &invoice.CustomerID,
			&invoice.Subtotal, &invoice.TaxRate, &invoice.TaxAmount, &invoice.Total,
			&invoice.Status, &invoice.DueAt, &invoice.CreatedAt); err != nil {
			return nil, err
		}
		invoice.WorkOrderID = nullStringPtr(workOrderIDNull)
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Store) ListOutboxEvents(ctx context.Context, shopID string, after time.Time, limit int) ([]store.OutboxEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT event_id, shop_id, type, payload, created_at
		FROM outbox_events
		WHERE shop_id = $1 AND created_at > $2
		ORDER BY created_at ASC
		LIMIT $3
	`, shopID, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []store.OutboxEvent
	for rows.Next() {
		var event store.OutboxEvent
		if err := rows.Scan(&event.EventID, &event.ShopID, &event.Type, &event.Payload, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (store.Session, error) {
	var session store.Session
	row := s.pool.QueryRow(ctx, `
		SELECT session_id, user_id, shop_id, role, expires_at
		FROM sessions
		WHERE session_id = $1 AND expires_at > now()
	`, sessionID)
	if err := row.Scan(&session.SessionID, &session.UserID, &session.ShopID, &session.Role, &session.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Session{}, store.ErrSessionNotFound
		}
		return store.Session{}, err
	}
	return session, nil
}

const workOrderColumns = `work_order_id, request_id, shop_id, customer_id, truck_id, bay_id,
		status, priority, description, estimated_hours, labor_cost, parts_cost, total_cost, created_at, completed_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkOrder(row rowScanner) (models.WorkOrder, error) {
	var order models.WorkOrder
	var truckIDNull sql.NullString
	var bayIDNull sql.NullString
	var completedAtNull sql.NullTime
	if err := row.Scan(&order.WorkOrderID, &order.RequestID, &order.ShopID, &order.CustomerID,
		&truckIDNull, &bayIDNull, &order.Status, &order.Priority, &order.Description,
		&order.EstimatedHours, &order.LaborCost, &order.PartsCost, &order.TotalCost,
		&order.CreatedAt, &completedAtNull); err != nil {
		return models.WorkOrder{}, err
	}
	order.TruckID = nullStringPtr(truckIDNull)
	order.BayID = nullStringPtr(bayIDNull)
	order.CompletedAt = nullTimePtr(completedAtNull)
	return order, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getWorkOrderByID(ctx context.Context, q queryRower, shopID, workOrderID string) (models.WorkOrder, error) {
	row := q.QueryRow(ctx, `
		SELECT `+workOrderColumns+`
		FROM work_orders
		WHERE shop_id = $1 AND work_order_id = $2
	`, shopID, workOrderID)
	order, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.WorkOrder{}, store.ErrWorkOrderNotFound
		}
		return models.WorkOrder{}, err
	}
	return order, nil
}

func getWorkOrderForUpdate(ctx context.Context, tx pgx.Tx, shopID, workOrderID string) (models.WorkOrder, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+workOrderColumns+`
		FROM work_orders
		WHERE shop_id = $1 AND work_order_id = $2
		FOR UPDATE
	`, shopID, workOrderID)
	order, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.WorkOrder{}, store.ErrWorkOrderNotFound
		}
		return models.WorkOrder{}, err
	}
	return order, nil
}

func getBayForUpdate(ctx context.Context, tx pgx.Tx, shopID, bayID string) (models.Bay, error) {
	var bay models.Bay
	row := tx.QueryRow(ctx, `
		SELECT bay_id, shop_id, name, seq, available, version
		FROM bays
		WHERE bay_id = $1 AND shop_id = $2
		FOR UPDATE
	`, bayID, shopID)
	if err := row.Scan(&bay.BayID, &bay.ShopID, &bay.Name, &bay.Seq, &bay.Available, &bay.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bay{}, store.ErrBayNotFound
		}
		return models.Bay{}, err
	}
	return bay, nil
}

// occupyBay is a compare-and-swap: the version guard turns two operators
// racing for the same bay into a typed failure instead of a double booking.
func occupyBay(ctx context.Context, tx pgx.Tx, bay models.Bay) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bays
		SET available = FALSE, version = version + 1
		WHERE bay_id = $1 AND version = $2 AND available = TRUE
	`, bay.BayID, bay.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		current, err := refreshBay(ctx, tx, bay.BayID)
		if err != nil {
			return err
		}
		if !current.Available {
			return store.ErrBayOccupied
		}
		return store.ErrConcurrentModification
	}
	return nil
}

func freeBayRow(ctx context.Context, tx pgx.Tx, bay models.Bay) error {
	_, err := tx.Exec(ctx, `
		UPDATE bays
		SET available = TRUE, version = version + 1
		WHERE bay_id = $1
	`, bay.BayID)
	return err
}

func freeBay(ctx context.Context, tx pgx.Tx, shopID, bayID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE bays
		SET available = TRUE, version = version + 1
		WHERE bay_id = $1 AND shop_id = $2
	`, bayID, shopID)
	return err
}

func refreshBay(ctx context.Context, tx pgx.Tx, bayID string) (models.Bay, error) {
	var bay models.Bay
	row := tx.QueryRow(ctx, `
		SELECT bay_id, shop_id, name, seq, available, version FROM bays WHERE bay_id = $1
	`, bayID)
	if err := row.Scan(&bay.BayID, &bay.ShopID, &bay.Name, &bay.Seq, &bay.Available, &bay.Version); err != nil {
		return models.Bay{}, err
	}
	return bay, nil
}

func insertWaitlistEntry(ctx context.Context, tx pgx.Tx, requestID string, entry models.WaitlistEntry) error {
	tag, err := tx.Exec(ctx, `
		INSERT INTO waitlist_entries (
			entry_id, request_id, shop_id, bay_id, work_order_id, customer_name, truck_name, status_snapshot, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (bay_id, work_order_id) DO NOTHING
	`, entry.EntryID, nullIfEmpty(requestID), entry.ShopID, entry.BayID, entry.WorkOrderID,
		entry.CustomerName, entry.TruckName, entry.StatusSnapshot, entry.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrAlreadyWaitlisted
	}
	return nil
}

func findEntryByRequestID(ctx context.Context, tx pgx.Tx, requestID string) (models.WaitlistEntry, bool, error) {
	var entry models.WaitlistEntry
	row := tx.QueryRow(ctx, `
		SELECT entry_id, shop_id, bay_id, work_order_id, customer_name, truck_name, status_snapshot, created_at
		FROM waitlist_entries
		WHERE request_id = $1
	`, requestID)
	if err := row.Scan(&entry.EntryID, &entry.ShopID, &entry.BayID, &entry.WorkOrderID,
		&entry.CustomerName, &entry.TruckName, &entry.StatusSnapshot, &entry.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.WaitlistEntry{}, false, nil
		}
		return models.WaitlistEntry{}, false, err
	}
	return entry, true, nil
}

func findBayByRequestID(ctx context.Context, tx pgx.Tx, requestID string) (models.Bay, bool, error) {
	var bay models.Bay
	row := tx.QueryRow(ctx, `
		SELECT bay_id, shop_id, name, seq, available, version
		FROM bays
		WHERE request_id = $1
	`, requestID)
	if err := row.Scan(&bay.BayID, &bay.ShopID, &bay.Name, &bay.Seq, &bay.Available, &bay.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bay{}, false, nil
		}
		return models.Bay{}, false, err
	}
	return bay, true, nil
}

func findWorkOrderByRequestID(ctx context.Context, tx pgx.Tx, requestID string) (models.WorkOrder, bool, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+workOrderColumns+`
		FROM work_orders
		WHERE request_id = $1
	`, requestID)
	order, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.WorkOrder{}, false, nil
		}
		return models.WorkOrder{}, false, err
	}
	return order, true, nil
}

type bayPayload struct {
	ShopID      string `json:"shop_id"`
	BayID       string `json:"bay_id"`
	Name        string `json:"name"`
	Available   bool   `json:"available"`
	WorkOrderID string `json:"work_order_id,omitempty"`
}

func bayEventPayload(bay models.Bay, workOrderID string) bayPayload {
	return bayPayload{
		ShopID:      bay.ShopID,
		BayID:       bay.BayID,
		Name:        bay.Name,
		Available:   bay.Available,
		WorkOrderID: workOrderID,
	}
}

type orderPayload struct {
	ShopID      string     `json:"shop_id"`
	WorkOrderID string     `json:"work_order_id"`
	CustomerID  string     `json:"customer_id"`
	BayID       *string    `json:"bay_id,omitempty"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func orderEventPayload(order models.WorkOrder) orderPayload {
	return orderPayload{
		ShopID:      order.ShopID,
		WorkOrderID: order.WorkOrderID,
		CustomerID:  order.CustomerID,
		BayID:       order.BayID,
		Status:      order.Status,
		CompletedAt: order.CompletedAt,
	}
}

type entryPayload struct {
	ShopID      string `json:"shop_id"`
	BayID       string `json:"bay_id"`
	WorkOrderID string `json:"work_order_id"`
	EntryID     string `json:"entry_id"`
}

func entryEventPayload(entry models.WaitlistEntry) entryPayload {
	return entryPayload{
		ShopID:      entry.ShopID,
		BayID:       entry.BayID,
		WorkOrderID: entry.WorkOrderID,
		EntryID:     entry.EntryID,
	}
}

type invoicePayload struct {
	ShopID      string  `json:"shop_id"`
	InvoiceID   string  `json:"invoice_id"`
	WorkOrderID *string `json:"work_order_id,omitempty"`
	Total       float64 `json:"total"`
}

func invoiceEventPayload(invoice models.Invoice) invoicePayload {
	return invoicePayload{
		ShopID:      invoice.ShopID,
		InvoiceID:   invoice.InvoiceID,
		WorkOrderID: invoice.WorkOrderID,
		Total:       invoice.Total,
	}
}

func insertOutboxEvent(ctx context.Context, tx pgx.Tx, shopID, eventType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO outbox_events (event_id, shop_id, type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), shopID, eventType, raw, time.Now().UTC())
	return err
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func nullBayRef(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	return &value.Time
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
