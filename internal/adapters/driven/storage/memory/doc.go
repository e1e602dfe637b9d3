// Package memory provides in-memory implementations of driven ports.
// They back the --storage memory mode and the core service tests.
package memory
