// Package store defines interfaces for data persistence and the errors
// shared by all store implementations.
package store
