// Package service provides the application-level use cases for managing
// tasks. Every operation returns a Result envelope; errors never escape as
// panics or raw store failures.
package service
