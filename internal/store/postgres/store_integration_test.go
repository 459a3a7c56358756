package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"gms/bay-service/internal/models"
	"gms/bay-service/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestCreateBayDuplicateName(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	createBay(t, ctx, st, shopID, "Bay 1")

	_, _, err := st.CreateBay(ctx, store.CreateBayInput{
		RequestID: uuid.NewString(),
		ShopID:    shopID,
		Name:      "bay 1",
	})
	if !errors.Is(err, store.ErrDuplicateBayName) {
		t.Fatalf("expected ErrDuplicateBayName, got %v", err)
	}
}

func TestCreateBayIdempotency(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	requestID := uuid.NewString()

	first, created, err := st.CreateBay(ctx, store.CreateBayInput{
		RequestID: requestID,
		ShopID:    shopID,
		Name:      "Bay 1",
	})
	if err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}
	second, created, err := st.CreateBay(ctx, store.CreateBayInput{
		RequestID: requestID,
		ShopID:    shopID,
		Name:      "Bay 1",
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if created {
		t.Fatalf("expected replay, got fresh creation")
	}
	if first.BayID != second.BayID {
		t.Fatalf("expected same bay ID for duplicate request")
	}

	var count int
	row := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM outbox_events WHERE type = 'bay.created'
	`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count outbox events: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 bay.created event, got %d", count)
	}
}

func TestCreateWorkOrderRoutesToFreeBay(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")

	order := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())
	if order.BayID == nil || *order.BayID != bay.BayID {
		t.Fatalf("expected work order bound to bay %s, got %v", bay.BayID, order.BayID)
	}

	refreshed, _, err := st.GetBay(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("get bay: %v", err)
	}
	if refreshed.Available {
		t.Fatalf("expected bay occupied after assignment")
	}

	entries, err := st.ListWaitlist(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty waitlist, got %d entries", len(entries))
	}
}

func TestCreateWorkOrderWaitlistsOnOccupiedBay(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")

	createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())
	waiting := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())

	if waiting.BayID != nil {
		t.Fatalf("expected waitlisted order unassigned, got bay %s", *waiting.BayID)
	}

	entries, err := st.ListWaitlist(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	if len(entries) != 1 || entries[0].WorkOrderID != waiting.WorkOrderID {
		t.Fatalf("expected one waitlist entry for %s, got %+v", waiting.WorkOrderID, entries)
	}
}

func TestWaitlistOrdering(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())

	base := time.Now().UTC()
	var want []string
	for i := 0; i < 3; i++ {
		order := createWorkOrder(t, ctx, st, shopID, "", uuid.NewString())
		_, _, err := st.Enqueue(ctx, store.EnqueueInput{
			RequestID:   uuid.NewString(),
			ShopID:      shopID,
			BayID:       bay.BayID,
			WorkOrderID: order.WorkOrderID,
			EnqueuedAt:  base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
		want = append(want, order.WorkOrderID)
	}

	entries, err := st.ListWaitlist(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, entry := range entries {
		if entry.WorkOrderID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], entry.WorkOrderID)
		}
	}
}

func TestEnqueueDuplicate(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())
	order := createWorkOrder(t, ctx, st, shopID, "", uuid.NewString())

	input := store.EnqueueInput{
		RequestID:   uuid.NewString(),
		ShopID:      shopID,
		BayID:       bay.BayID,
		WorkOrderID: order.WorkOrderID,
	}
	if _, _, err := st.Enqueue(ctx, input); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	input.RequestID = uuid.NewString()
	if _, _, err := st.Enqueue(ctx, input); !errors.Is(err, store.ErrAlreadyWaitlisted) {
		t.Fatalf("expected ErrAlreadyWaitlisted, got %v", err)
	}
}

func TestEnqueueIdempotency(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())
	order := createWorkOrder(t, ctx, st, shopID, "", uuid.NewString())

	input := store.EnqueueInput{
		RequestID:   uuid.NewString(),
		ShopID:      shopID,
		BayID:       bay.BayID,
		WorkOrderID: order.WorkOrderID,
	}
	first, created, err := st.Enqueue(ctx, input)
	if err != nil || !created {
		t.Fatalf("first enqueue: created=%v err=%v", created, err)
	}
	second, created, err := st.Enqueue(ctx, input)
	if err != nil {
		t.Fatalf("second enqueue: %v", err)
	}
	if created {
		t.Fatalf("expected replay, got fresh entry")
	}
	if first.EntryID != second.EntryID {
		t.Fatalf("expected same entry ID for duplicate request")
	}

	entries, err := st.ListWaitlist(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 waitlist entry, got %d", len(entries))
	}

	var count int
	row := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM outbox_events WHERE type = 'waitlist.enqueued'
	`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count outbox events: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 waitlist.enqueued event, got %d", count)
	}
}

func TestEnqueueAssignedWorkOrder(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bayA := createBay(t, ctx, st, shopID, "Bay 1")
	bayB := createBay(t, ctx, st, shopID, "Bay 2")
	assigned := createWorkOrder(t, ctx, st, shopID, bayA.BayID, uuid.NewString())

	_, _, err := st.Enqueue(ctx, store.EnqueueInput{
		RequestID:   uuid.NewString(),
		ShopID:      shopID,
		BayID:       bayB.BayID,
		WorkOrderID: assigned.WorkOrderID,
	})
	if !errors.Is(err, store.ErrWorkOrderAssigned) {
		t.Fatalf("expected ErrWorkOrderAssigned, got %v", err)
	}
}

func TestPromoteOccupiedBay(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())
	waiting := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())

	_, err := st.Promote(ctx, store.BayActionInput{
		ShopID:      shopID,
		BayID:       bay.BayID,
		WorkOrderID: waiting.WorkOrderID,
	})
	if !errors.Is(err, store.ErrBayOccupied) {
		t.Fatalf("expected ErrBayOccupied, got %v", err)
	}

	entries, err := st.ListWaitlist(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("failed promotion must leave the entry queued, got %d entries", len(entries))
	}
}

func TestPromoteAssignsAndDequeues(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	occupant := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())
	waiting := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())

	if _, _, err := st.CompleteAndBill(ctx, store.BayActionInput{
		ShopID:      shopID,
		BayID:       bay.BayID,
		WorkOrderID: occupant.WorkOrderID,
	}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Completion never auto-promotes: the entry must still be queued.
	entries, err := st.ListWaitlist(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected entry to survive completion, got %d", len(entries))
	}

	promoted, err := st.Promote(ctx, store.BayActionInput{
		ShopID:      shopID,
		BayID:       bay.BayID,
		WorkOrderID: waiting.WorkOrderID,
	})
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.BayID == nil || *promoted.BayID != bay.BayID {
		t.Fatalf("expected promoted order bound to bay, got %v", promoted.BayID)
	}
	if promoted.Status != models.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", promoted.Status)
	}

	entries, err = st.ListWaitlist(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected entry removed after promotion, got %d", len(entries))
	}
}

func TestPromoteConcurrency(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")

	var orders []models.WorkOrder
	for i := 0; i < 2; i++ {
		order := createWorkOrder(t, ctx, st, shopID, "", uuid.NewString())
		if _, _, err := st.Enqueue(ctx, store.EnqueueInput{
			RequestID:   uuid.NewString(),
			ShopID:      shopID,
			BayID:       bay.BayID,
			WorkOrderID: order.WorkOrderID,
		}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
		orders = append(orders, order)
	}

	var wg sync.WaitGroup
	results := make(chan error, len(orders))
	for _, order := range orders {
		wg.Add(1)
		go func(workOrderID string) {
			defer wg.Done()
			_, err := st.Promote(ctx, store.BayActionInput{
				ShopID:      shopID,
				BayID:       bay.BayID,
				WorkOrderID: workOrderID,
			})
			results <- err
		}(order.WorkOrderID)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, store.ErrBayOccupied) || errors.Is(err, store.ErrConcurrentModification):
			losses++
		default:
			t.Fatalf("unexpected promote error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("expected exactly one winner, got wins=%d losses=%d", wins, losses)
	}
}

func TestCompleteAndBill(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	order, _, err := st.CreateWorkOrder(ctx, store.CreateWorkOrderInput{
		RequestID:  uuid.NewString(),
		ShopID:     shopID,
		CustomerID: "cust-1",
		BayID:      bay.BayID,
		LaborCost:  120.50,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create work order: %v", err)
	}

	completed, invoice, err := st.CompleteAndBill(ctx, store.BayActionInput{
		ShopID:      shopID,
		BayID:       bay.BayID,
		WorkOrderID: order.WorkOrderID,
	})
	if err != nil {
		t.Fatalf("complete and bill: %v", err)
	}
	if completed.Status != models.StatusCompleted || completed.CompletedAt == nil {
		t.Fatalf("expected completed order with timestamp, got %+v", completed)
	}
	if invoice == nil {
		t.Fatalf("expected invoice")
	}
	if invoice.Subtotal != 120.50 || invoice.TaxAmount != 9.64 || invoice.Total != 130.14 {
		t.Fatalf("unexpected totals: %+v", invoice)
	}

	refreshed, _, err := st.GetBay(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("get bay: %v", err)
	}
	if !refreshed.Available {
		t.Fatalf("expected bay freed after completion")
	}
}

func TestCompleteWithoutOccupant(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")

	_, _, err := st.CompleteAndBill(ctx, store.BayActionInput{
		ShopID: shopID,
		BayID:  bay.BayID,
	})
	if !errors.Is(err, store.ErrNoActiveWorkOrder) {
		t.Fatalf("expected ErrNoActiveWorkOrder, got %v", err)
	}
}

func TestClearBayWithoutBilling(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	order := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())

	cleared, err := st.ClearBay(ctx, store.BayActionInput{
		ShopID: shopID,
		BayID:  bay.BayID,
	})
	if err != nil {
		t.Fatalf("clear bay: %v", err)
	}
	if !cleared.Available {
		t.Fatalf("expected bay available after clear")
	}

	refreshed, _, err := st.GetWorkOrder(ctx, shopID, order.WorkOrderID)
	if err != nil {
		t.Fatalf("get work order: %v", err)
	}
	if refreshed.BayID != nil {
		t.Fatalf("expected work order detached, got bay %s", *refreshed.BayID)
	}
	if refreshed.Status == models.StatusCompleted {
		t.Fatalf("clear must not complete the work order")
	}

	invoices, err := st.ListInvoices(ctx, shopID)
	if err != nil {
		t.Fatalf("list invoices: %v", err)
	}
	if len(invoices) != 0 {
		t.Fatalf("clear must not bill, got %d invoices", len(invoices))
	}
}

func TestDeleteWorkOrderLeavesOtherEntries(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	occupant := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())
	waiting := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())

	if err := st.DeleteWorkOrder(ctx, shopID, occupant.WorkOrderID); err != nil {
		t.Fatalf("delete work order: %v", err)
	}

	refreshed, _, err := st.GetBay(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("get bay: %v", err)
	}
	if !refreshed.Available {
		t.Fatalf("expected bay freed when occupant deleted")
	}

	entries, err := st.ListWaitlist(ctx, shopID, bay.BayID)
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	if len(entries) != 1 || entries[0].WorkOrderID != waiting.WorkOrderID {
		t.Fatalf("expected other entry untouched, got %+v", entries)
	}
}

func TestRemoveBayGuards(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")
	occupant := createWorkOrder(t, ctx, st, shopID, bay.BayID, uuid.NewString())

	if err := st.RemoveBay(ctx, shopID, bay.BayID); !errors.Is(err, store.ErrBayHasActiveWorkOrder) {
		t.Fatalf("expected ErrBayHasActiveWorkOrder, got %v", err)
	}

	if _, _, err := st.CompleteAndBill(ctx, store.BayActionInput{
		ShopID:      shopID,
		BayID:       bay.BayID,
		WorkOrderID: occupant.WorkOrderID,
	}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	waiting := createWorkOrder(t, ctx, st, shopID, "", uuid.NewString())
	if _, _, err := st.Enqueue(ctx, store.EnqueueInput{
		RequestID:   uuid.NewString(),
		ShopID:      shopID,
		BayID:       bay.BayID,
		WorkOrderID: waiting.WorkOrderID,
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := st.RemoveBay(ctx, shopID, bay.BayID); !errors.Is(err, store.ErrWaitlistNotEmpty) {
		t.Fatalf("expected ErrWaitlistNotEmpty, got %v", err)
	}

	if err := st.Dequeue(ctx, shopID, bay.BayID, waiting.WorkOrderID); err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if err := st.RemoveBay(ctx, shopID, bay.BayID); err != nil {
		t.Fatalf("remove bay: %v", err)
	}
	if _, _, err := st.GetBay(ctx, shopID, bay.BayID); !errors.Is(err, store.ErrBayNotFound) {
		t.Fatalf("expected ErrBayNotFound after removal, got %v", err)
	}
}

func TestDequeueMissingEntryIsNoop(t *testing.T) {
	ctx := context.Background()
	st, pool, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	shopID := seedShop(t, ctx, pool)
	bay := createBay(t, ctx, st, shopID, "Bay 1")

	if err := st.Dequeue(ctx, shopID, bay.BayID, uuid.NewString()); err != nil {
		t.Fatalf("expected no-op dequeue, got %v", err)
	}
}

func setupTestStore(t *testing.T, ctx context.Context) (*Store, *pgxpool.Pool, func()) {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("DB_DSN")
	}
	if dsn == "" {
		t.Skip("TEST_DB_DSN or DB_DSN is required for integration tests")
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := createSchema(ctx, dsn, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	pool, err := newPoolWithSchema(ctx, dsn, schema)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}

	if err := applyMigrations(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("apply migrations: %v", err)
	}

	st := NewStore(pool, Options{TaxRate: 0.08, InvoiceDueDays: 30})
	cleanup := func() {
		pool.Close()
		_ = dropSchema(context.Background(), dsn, schema)
	}
	return st, pool, cleanup
}

func createSchema(ctx context.Context, dsn, schema string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, "CREATE SCHEMA "+schema)
	return err
}

func dropSchema(ctx context.Context, dsn, schema string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE")
	return err
}

func newPoolWithSchema(ctx context.Context, dsn, schema string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	return pgxpool.NewWithConfig(ctx, cfg)
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir := filepath.Join("..", "..", "..", "migrations")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if _, err := pool.Exec(ctx, string(content)); err != nil {
			return err
		}
	}
	return nil
}

func seedShop(t *testing.T, ctx context.Context, pool *pgxpool.Pool) string {
	t.Helper()
	shopID := uuid.NewString()
	if _, err := pool.Exec(ctx, `
		INSERT INTO shops (shop_id, name) VALUES ($1, 'Shop')
	`, shopID); err != nil {
		t.Fatalf("insert shop: %v", err)
	}
	return shopID
}

func createBay(t *testing.T, ctx context.Context, st *Store, shopID, name string) models.Bay {
	t.Helper()
	bay, _, err := st.CreateBay(ctx, store.CreateBayInput{
		RequestID: uuid.NewString(),
		ShopID:    shopID,
		Name:      name,
	})
	if err != nil {
		t.Fatalf("create bay: %v", err)
	}
	return bay
}

func createWorkOrder(t *testing.T, ctx context.Context, st *Store, shopID, bayID, requestID string) models.WorkOrder {
	t.Helper()
	order, _, err := st.CreateWorkOrder(ctx, store.CreateWorkOrderInput{
		RequestID:  requestID,
		ShopID:     shopID,
		CustomerID: "cust-" + requestID[:8],
		BayID:      bayID,
		Priority:   "normal",
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create work order: %v", err)
	}
	return order
}
