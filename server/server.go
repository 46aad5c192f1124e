package server // import "github.com/bookgrove/bookgrove/server"

import (
	"context"
	"fmt"
	"net/http"
	"os"

	v1 "github.com/bookgrove/bookgrove/api/v1"
	"github.com/bookgrove/bookgrove/catalog"
	"github.com/bookgrove/bookgrove/config"
	"github.com/bookgrove/bookgrove/store"
	"github.com/bookgrove/bookgrove/version"
	"github.com/bookgrove/bookgrove/worker"
	"github.com/gorilla/mux"
)

// StartServer starts the HTTP server.
func StartServer(ctx context.Context, store *store.Store, catalog *catalog.Catalog, pool worker.WorkPool) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store, catalog, pool),
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		fmt.Println("Starting HTTP server in:", server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Println("HTTP server error", err)
			os.Exit(1)
		}
	}()
}

func setupHandler(store *store.Store, catalog *catalog.Catalog, pool worker.WorkPool) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware)

	apiHandler := v1.NewHandler(store, catalog, pool)
	v1.Server(router, apiHandler)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
