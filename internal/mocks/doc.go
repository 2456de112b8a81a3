// Package mocks provides hand-rolled test doubles for the interface
// boundaries of the application.
package mocks
