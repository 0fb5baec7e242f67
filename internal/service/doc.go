// Package service contains the application services: registration and
// login orchestration, the organizer ownership resolver, and the
// festival query engine with its owner-gated mutations. Services take a
// context plus explicit identity arguments and return domain entities;
// HTTP concerns stay in internal/api.
package service
