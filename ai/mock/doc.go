// Package mock provides test doubles for the ai package interfaces.
// The mocks allow behavior injection via function fields and track call
// counts for assertions.
package mock
