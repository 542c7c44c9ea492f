// Package main implements the entry point for the tasktrack API server,
// a task-tracking CRUD service backed by PostgreSQL.
package main

import (
	"context"
	"log"
)

// main wires configuration, logging, the database, and the HTTP server, then
// blocks until shutdown.
func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
