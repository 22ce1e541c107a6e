package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"treelink-backend/internal/handlers"
)

// SetupRoutes configures all application routes
func SetupRoutes(treelinkHandler *handlers.TreelinkHandler, publicHandler *handlers.PublicProfileHandler, healthHandler *handlers.HealthHandler) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Link collection routes (GET/POST/PUT/DELETE dispatched by method)
	http.HandleFunc("/api/treelink", treelinkHandler.Handle)
	http.HandleFunc("/api/treelink/photo", treelinkHandler.SetImage)

	// Public profile resolver
	http.HandleFunc("/api/u/", publicHandler.Resolve)

	// Swagger documentation
	http.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Treelink backend is running."))
}
