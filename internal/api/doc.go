// Package api implements the HTTP handlers for the JSON task API. Handlers
// translate Result envelopes from the service layer into status codes and
// JSON bodies; they hold no business logic of their own.
package api
