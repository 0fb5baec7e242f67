// Package store defines the persistence interfaces consumed by the
// service layer, the shared error taxonomy for stores, and the
// transaction helper. Concrete implementations live in
// internal/platform/postgres.
package store
