package routes

import (
	"net/http"

	"github.com/academiebarbier/marcel-backend/internal/api/handlers"
	"github.com/academiebarbier/marcel-backend/internal/api/middleware"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	smsWebhookHandler *handlers.SMSWebhookHandler
	metrics           *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(smsWebhookHandler *handlers.SMSWebhookHandler, metrics *observability.Metrics) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		smsWebhookHandler: smsWebhookHandler,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.mux.HandleFunc("POST /webhooks/sms", r.smsWebhookHandler.HandleInbound)

	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	return handler
}
