package main

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"gms/bay-service/internal/config"
	"gms/bay-service/internal/httpapi"
	"gms/bay-service/internal/hub"
	"gms/bay-service/internal/store/postgres"
	"gms/bay-service/internal/telemetry"

	"github.com/google/uuid"
	"github.com/igm/sockjs-go/sockjs"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type eventEnvelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

const (
	offsetConsumer  = "bay-board"
	outboxRetention = 24 * time.Hour
)

func main() {
	cfg := config.Load()
	shutdownTelemetry := telemetry.Setup("bay-board")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	store := postgres.NewStore(pool, postgres.Options{
		TaxRate:        cfg.TaxRate,
		InvoiceDueDays: cfg.InvoiceDueDays,
	})
	h := hub.New()
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		IPPerMinute: cfg.RateLimitPerMinute,
		IPBurst:     cfg.RateLimitBurst,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", expvar.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	sockjsHandler := sockjs.NewHandler("/board", sockjs.DefaultOptions, func(session sockjs.Session) {
		req := session.Request()
		sessionID := sessionIDFromRequest(req)
		if sessionID == "" {
			_ = session.Close(4001, "missing session")
			return
		}
		authSession, err := store.GetSession(context.Background(), sessionID)
		if err != nil {
			_ = session.Close(4002, "invalid session")
			return
		}

		client := &hub.Client{ID: uuid.NewString(), Send: make(chan []byte, 16)}
		h.Register(client)
		defer h.Unregister(client)

		go func() {
			for msg := range client.Send {
				_ = session.Send(string(msg))
			}
		}()

		for {
			msg, err := session.Recv()
			if err != nil {
				return
			}
			parsed, ok := hub.ParseSubscribe([]byte(msg))
			if ok {
				if parsed.Action == "unsubscribe" {
					h.UpdateSubscription(client, hub.Subscription{})
				} else {
					// Subscriptions are pinned to the session's shop; the
					// client only narrows by bay.
					h.UpdateSubscription(client, hub.Subscription{
						ShopID: authSession.ShopID,
						BayID:  parsed.BayID,
					})
				}
				continue
			}
		}
	})
	mux.Handle("/board/", sockjsHandler)

	wrapped := otelhttp.NewHandler(httpapi.LoggingMiddleware(limiter.Middleware(mux)), "bay-board")
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lastEventAt, err := store.GetBoardOffset(context.Background(), offsetConsumer)
	if err != nil {
		log.Printf("load offset error: %v", err)
	}
	if lastEventAt.IsZero() {
		lastEventAt = time.Unix(0, 0).UTC()
	}
	if cfg.BoardPollInterval <= 0 {
		cfg.BoardPollInterval = time.Second
	}
	var running int32

	go func() {
		log.Printf("bay-board listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.BoardPollInterval)
		defer ticker.Stop()
		for range ticker.C {
			if !atomic.CompareAndSwapInt32(&running, 0, 1) {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			events, err := store.ListBoardEvents(ctx, lastEventAt, cfg.BoardBatchSize)
			cancel()
			if err == nil {
				for _, event := range events {
					lastEventAt = event.CreatedAt
					meta := extractMeta(event.Payload)
					meta.ShopID = event.ShopID
					env := eventEnvelope{Type: event.Type, Payload: event.Payload, CreatedAt: event.CreatedAt}
					payload, _ := json.Marshal(env)
					h.Broadcast(payload, meta)
				}
				if len(events) > 0 {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := store.UpdateBoardOffset(ctx, offsetConsumer, lastEventAt); err != nil {
						log.Printf("update offset error: %v", err)
					}
					cutoff := lastEventAt.Add(-outboxRetention)
					if removed, err := store.CleanupOutbox(ctx, cutoff); err != nil {
						log.Printf("cleanup outbox error: %v", err)
					} else if removed > 0 {
						log.Printf("cleanup outbox removed=%d", removed)
					}
					cancel()
				}
			}
			atomic.StoreInt32(&running, 0)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func extractMeta(payload []byte) hub.Subscription {
	var data map[string]interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return hub.Subscription{}
	}
	return hub.Subscription{
		ShopID: str(data["shop_id"]),
		BayID:  str(data["bay_id"]),
	}
}

func str(value interface{}) string {
	if value == nil {
		return ""
	}
	if v, ok := value.(string); ok {
		return v
	}
	return fmt.Sprint(value)
}

func sessionIDFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	return strings.TrimSpace(r.URL.Query().Get("session_id"))
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
