package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"animal-shelter-manager/internal/router"
)

// @title Animal Shelter Manager API
// @version 1.0
// @description Shelter animal records, adoption request lifecycle and accounts.
func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Backend and auth come from the environment; with nothing set this is
	// dev mode (in-memory store, debug headers for auth).
	r := router.NewRouter(router.Options{})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("starting server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
