package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gms/bay-service/internal/store"

	"github.com/google/uuid"
)

type Handler struct {
	store store.Store
}

type createBayRequest struct {
	RequestID string `json:"request_id"`
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
}

type createWorkOrderRequest struct {
	RequestID      string  `json:"request_id"`
	ShopID         string  `json:"shop_id"`
	CustomerID     string  `json:"customer_id"`
	TruckID        string  `json:"truck_id"`
	BayID          string  `json:"bay_id"`
	Priority       string  `json:"priority"`
	Description    string  `json:"description"`
	EstimatedHours float64 `json:"estimated_hours"`
	LaborCost      float64 `json:"labor_cost"`
	PartsCost      float64 `json:"parts_cost"`
	TotalCost      float64 `json:"total_cost"`
	CustomerName   string  `json:"customer_name"`
	TruckName      string  `json:"truck_name"`
}

type enqueueRequest struct {
	RequestID    string `json:"request_id"`
	ShopID       string `json:"shop_id"`
	WorkOrderID  string `json:"work_order_id"`
	CustomerName string `json:"customer_name"`
	TruckName    string `json:"truck_name"`
}

type bayActionRequest struct {
	RequestID   string `json:"request_id"`
	ShopID      string `json:"shop_id"`
	WorkOrderID string `json:"work_order_id"`
}

type completeResponse struct {
	WorkOrder    interface{} `json:"work_order"`
	Invoice      interface{} `json:"invoice,omitempty"`
	BillingError string      `json:"billing_error,omitempty"`
}

type errorResponse struct {
	RequestID string        `json:"request_id"`
	Error     responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHandler(store store.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/api/bays", h.handleBays)
	mux.HandleFunc("/api/bays/recommend", h.handleRecommendBay)
	mux.HandleFunc("/api/bays/", h.handleBaySubtree)
	mux.HandleFunc("/api/workorders", h.handleWorkOrders)
	mux.HandleFunc("/api/workorders/", h.handleWorkOrderByID)
	mux.HandleFunc("/api/invoices", h.handleInvoices)
	mux.HandleFunc("/api/events", h.handleEvents)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleBays(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreateBay(w, r)
	case http.MethodGet:
		h.handleListBays(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreateBay(w http.ResponseWriter, r *http.Request) {
	var req createBayRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	req.RequestID = strings.TrimSpace(req.RequestID)
	req.ShopID = strings.TrimSpace(req.ShopID)
	req.Name = strings.TrimSpace(req.Name)

	if req.RequestID == "" || req.ShopID == "" || req.Name == "" {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "request_id, shop_id, and name are required")
		return
	}
	if !isValidUUID(req.RequestID) || !isValidUUID(req.ShopID) {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "request_id and shop_id must be UUIDs")
		return
	}
	if !shopAllowed(r, req.ShopID) {
		writeError(w, req.RequestID, http.StatusForbidden, "access_denied", "shop access denied")
		return
	}

	bay, _, err := h.store.CreateBay(r.Context(), store.CreateBayInput{
		RequestID: req.RequestID,
		ShopID:    req.ShopID,
		Name:      req.Name,
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, req.RequestID, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, bay)
}

func (h *Handler) handleListBays(w http.ResponseWriter, r *http.Request) {
	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	if shopID == "" {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id is required")
		return
	}
	if !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	bays, err := h.store.ListBays(r.Context(), shopID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, "", status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, bays)
}

func (h *Handler) handleRecommendBay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	hint := strings.TrimSpace(r.URL.Query().Get("hint"))
	if shopID == "" {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id is required")
		return
	}
	if !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	bay, found, err := h.store.RecommendBay(r.Context(), shopID, hint)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, "", status, code, msg)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, bay)
}

func (h *Handler) handleBaySubtree(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/bays/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	bayID := parts[0]
	if !isValidUUID(bayID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "bay_id must be a UUID")
		return
	}

	switch {
	case len(parts) == 1:
		h.handleBayByID(w, r, bayID)
	case len(parts) == 2 && parts[1] == "waitlist":
		h.handleWaitlist(w, r, bayID)
	case len(parts) == 3 && parts[1] == "waitlist":
		h.handleDequeue(w, r, bayID, parts[2])
	case len(parts) == 3 && parts[1] == "actions":
		h.handleBayAction(w, r, bayID, parts[2])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleBayByID(w http.ResponseWriter, r *http.Request, bayID string) {
	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	if shopID == "" || !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		bay, _, err := h.store.GetBay(r.Context(), shopID, bayID)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, "", status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, bay)
	case http.MethodDelete:
		if err := h.store.RemoveBay(r.Context(), shopID, bayID); err != nil {
			status, code, msg := mapError(err)
			writeError(w, "", status, code, msg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleWaitlist(w http.ResponseWriter, r *http.Request, bayID string) {
	switch r.Method {
	case http.MethodGet:
		h.handleListWaitlist(w, r, bayID)
	case http.MethodPost:
		h.handleEnqueue(w, r, bayID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleListWaitlist(w http.ResponseWriter, r *http.Request, bayID string) {
	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	if shopID == "" || !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	entries, err := h.store.ListWaitlist(r.Context(), shopID, bayID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, "", status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleEnqueue(w http.ResponseWriter, r *http.Request, bayID string) {
	var req enqueueRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	req.RequestID = strings.TrimSpace(req.RequestID)
	req.ShopID = strings.TrimSpace(req.ShopID)
	req.WorkOrderID = strings.TrimSpace(req.WorkOrderID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.TruckName = strings.TrimSpace(req.TruckName)

	if req.RequestID == "" || req.ShopID == "" || req.WorkOrderID == "" {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "request_id, shop_id, and work_order_id are required")
		return
	}
	if !isValidUUID(req.RequestID) || !isValidUUID(req.ShopID) || !isValidUUID(req.WorkOrderID) {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "request_id, shop_id, and work_order_id must be UUIDs")
		return
	}
	if !shopAllowed(r, req.ShopID) {
		writeError(w, req.RequestID, http.StatusForbidden, "access_denied", "shop access denied")
		return
	}

	entry, _, err := h.store.Enqueue(r.Context(), store.EnqueueInput{
		RequestID:    req.RequestID,
		ShopID:       req.ShopID,
		BayID:        bayID,
		WorkOrderID:  req.WorkOrderID,
		CustomerName: req.CustomerName,
		TruckName:    req.TruckName,
		EnqueuedAt:   time.Now().UTC(),
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, req.RequestID, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleDequeue(w http.ResponseWriter, r *http.Request, bayID, workOrderID string) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !isValidUUID(workOrderID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "work_order_id must be a UUID")
		return
	}
	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	if shopID == "" || !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	if err := h.store.Dequeue(r.Context(), shopID, bayID, workOrderID); err != nil {
		status, code, msg := mapError(err)
		writeError(w, "", status, code, msg)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleBayAction(w http.ResponseWriter, r *http.Request, bayID, action string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req bayActionRequest
	if !decodeBayAction(w, r, &req) {
		return
	}

	input := store.BayActionInput{
		ShopID:      req.ShopID,
		BayID:       bayID,
		WorkOrderID: req.WorkOrderID,
		OccurredAt:  time.Now().UTC(),
	}

	switch action {
	case "promote":
		h.handlePromote(w, r, req, input)
	case "complete":
		h.handleComplete(w, r, req, input)
	case "clear":
		h.handleClear(w, r, req, input)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request, req bayActionRequest, input store.BayActionInput) {
	if req.WorkOrderID == "" {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "work_order_id is required")
		return
	}
	if !isValidUUID(req.WorkOrderID) {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "work_order_id must be a UUID")
		return
	}

	order, err := h.store.Promote(r.Context(), input)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, req.RequestID, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request, req bayActionRequest, input store.BayActionInput) {
	order, invoice, err := h.store.CompleteAndBill(r.Context(), input)
	if err != nil {
		// Billing failure still carries the committed completion back to the
		// caller so the invoice can be retried out of band.
		if errors.Is(err, store.ErrBillingFailed) {
			writeJSON(w, http.StatusOK, completeResponse{
				WorkOrder:    order,
				BillingError: "invoice creation failed",
			})
			return
		}
		status, code, msg := mapError(err)
		writeError(w, req.RequestID, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, completeResponse{WorkOrder: order, Invoice: invoice})
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request, req bayActionRequest, input store.BayActionInput) {
	bay, err := h.store.ClearBay(r.Context(), input)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, req.RequestID, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, bay)
}

func (h *Handler) handleWorkOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreateWorkOrder(w, r)
	case http.MethodGet:
		h.handleListWorkOrders(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req createWorkOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	req.RequestID = strings.TrimSpace(req.RequestID)
	req.ShopID = strings.TrimSpace(req.ShopID)
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.TruckID = strings.TrimSpace(req.TruckID)
	req.BayID = strings.TrimSpace(req.BayID)
	req.Priority = strings.TrimSpace(req.Priority)

	if req.RequestID == "" || req.ShopID == "" || req.CustomerID == "" {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "request_id, shop_id, and customer_id are required")
		return
	}
	if !isValidUUID(req.RequestID) || !isValidUUID(req.ShopID) {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "request_id and shop_id must be UUIDs")
		return
	}
	if req.BayID != "" && !isValidUUID(req.BayID) {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "bay_id must be a UUID when provided")
		return
	}
	if req.EstimatedHours < 0 || req.LaborCost < 0 || req.PartsCost < 0 || req.TotalCost < 0 {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "cost fields must be non-negative")
		return
	}
	if req.Priority == "" {
		req.Priority = "normal"
	}
	if !shopAllowed(r, req.ShopID) {
		writeError(w, req.RequestID, http.StatusForbidden, "access_denied", "shop access denied")
		return
	}

	order, _, err := h.store.CreateWorkOrder(r.Context(), store.CreateWorkOrderInput{
		RequestID:      req.RequestID,
		ShopID:         req.ShopID,
		CustomerID:     req.CustomerID,
		TruckID:        req.TruckID,
		BayID:          req.BayID,
		Priority:       req.Priority,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		LaborCost:      req.LaborCost,
		PartsCost:      req.PartsCost,
		TotalCost:      req.TotalCost,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		TruckName:      strings.TrimSpace(req.TruckName),
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, req.RequestID, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) handleListWorkOrders(w http.ResponseWriter, r *http.Request) {
	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if shopID == "" || !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	orders, err := h.store.ListWorkOrders(r.Context(), shopID, status)
	if err != nil {
		code, errCode, msg := mapError(err)
		writeError(w, "", code, errCode, msg)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleWorkOrderByID(w http.ResponseWriter, r *http.Request) {
	workOrderID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/workorders/"), "/")
	if !isValidUUID(workOrderID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "work_order_id must be a UUID")
		return
	}
	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	if shopID == "" || !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		order, _, err := h.store.GetWorkOrder(r.Context(), shopID, workOrderID)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, "", status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, order)
	case http.MethodDelete:
		if err := h.store.DeleteWorkOrder(r.Context(), shopID, workOrderID); err != nil {
			status, code, msg := mapError(err)
			writeError(w, "", status, code, msg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	if shopID == "" || !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	invoices, err := h.store.ListInvoices(r.Context(), shopID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, "", status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, invoices)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	shopID := strings.TrimSpace(r.URL.Query().Get("shop_id"))
	if shopID == "" {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id is required")
		return
	}
	if !isValidUUID(shopID) {
		writeError(w, "", http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return
	}

	afterRaw := strings.TrimSpace(r.URL.Query().Get("after"))
	var after time.Time
	if afterRaw != "" {
		parsed, err := time.Parse(time.RFC3339, afterRaw)
		if err != nil {
			writeError(w, "", http.StatusBadRequest, "invalid_request", "after must be RFC3339 timestamp")
			return
		}
		after = parsed
	}

	limit := 100
	if limitRaw := strings.TrimSpace(r.URL.Query().Get("limit")); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil || parsed <= 0 {
			writeError(w, "", http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	events, err := h.store.ListOutboxEvents(r.Context(), shopID, after, limit)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, "", status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func decodeBayAction(w http.ResponseWriter, r *http.Request, req *bayActionRequest) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(req); err != nil {
		writeError(w, "", http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return false
	}
	req.RequestID = strings.TrimSpace(req.RequestID)
	req.ShopID = strings.TrimSpace(req.ShopID)
	req.WorkOrderID = strings.TrimSpace(req.WorkOrderID)

	if req.ShopID == "" {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "shop_id is required")
		return false
	}
	if !isValidUUID(req.ShopID) {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "shop_id must be a UUID")
		return false
	}
	// request_id is echoed back on errors but carries no replay semantics
	// here; bay actions are state transitions guarded by the bay itself.
	if req.RequestID != "" && !isValidUUID(req.RequestID) {
		writeError(w, req.RequestID, http.StatusBadRequest, "invalid_request", "request_id must be a UUID when provided")
		return false
	}
	if !shopAllowed(r, req.ShopID) {
		writeError(w, req.RequestID, http.StatusForbidden, "access_denied", "shop access denied")
		return false
	}
	return true
}

// shopAllowed checks a body-supplied shop_id against the authenticated
// session. Requests routed without AuthMiddleware carry no session and are
// not restricted here.
func shopAllowed(r *http.Request, shopID string) bool {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		return true
	}
	return shopID == session.ShopID
}

func isValidUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, store.ErrBayNotFound):
		return http.StatusNotFound, "bay_not_found", "bay not found"
	case errors.Is(err, store.ErrWorkOrderNotFound):
		return http.StatusNotFound, "work_order_not_found", "work order not found"
	case errors.Is(err, store.ErrEntryNotFound):
		return http.StatusNotFound, "entry_not_found", "waitlist entry not found"
	case errors.Is(err, store.ErrDuplicateBayName):
		return http.StatusConflict, "duplicate_bay_name", "bay name already in use"
	case errors.Is(err, store.ErrBayOccupied):
		return http.StatusConflict, "bay_occupied", "bay is occupied"
	case errors.Is(err, store.ErrBayHasActiveWorkOrder):
		return http.StatusConflict, "bay_has_active_work_order", "bay has an active work order"
	case errors.Is(err, store.ErrWaitlistNotEmpty):
		return http.StatusConflict, "waitlist_not_empty", "bay waitlist is not empty"
	case errors.Is(err, store.ErrAlreadyWaitlisted):
		return http.StatusConflict, "already_waitlisted", "work order already waitlisted for this bay"
	case errors.Is(err, store.ErrWorkOrderAssigned):
		return http.StatusConflict, "work_order_assigned", "work order already assigned to a bay"
	case errors.Is(err, store.ErrNoActiveWorkOrder):
		return http.StatusConflict, "no_active_work_order", "bay has no active work order"
	case errors.Is(err, store.ErrInvalidState):
		return http.StatusConflict, "invalid_state", "work order state does not allow this action"
	case errors.Is(err, store.ErrConcurrentModification):
		return http.StatusConflict, "concurrent_modification", "bay was modified concurrently, retry"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

func writeError(w http.ResponseWriter, requestID string, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		RequestID: requestID,
		Error: responseError{
			Code:    code,
			Message: message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
