// Package handler implements the HTTP API of the hypergraph store.
//
// # Handlers
//
// HypergraphHandler serves simple hyperedges, light hyperedges, duals,
// incidence matrices, node-centric dual hypergraphs and bulk import/export.
// Router mounts it on a chi router under /api.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation and derived computations
// - PUT for create-or-replace under a key
// - DELETE for removal, idempotent
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 201,
// 204). Error responses return JSON with {error, kind, key, details}:
// validation errors are 422, missing records 404, malformed bodies 400 and
// storage or decode failures 500.
//
// # Server-Sent Events
//
// /api/events streams change events from the service event bus.
package handler
