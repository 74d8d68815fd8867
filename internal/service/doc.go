// Package service implements the hypergraph store's business logic.
//
// Services sit between the HTTP handlers or CLI and the repository facades.
// They validate records before writing, turn absent records into not found
// errors and publish change events.
//
// # Services
//
// EdgeService manages simple and light hyperedges and bulk import/export
// through the codec package.
//
// DualService synthesizes the dual of a stored edge, builds incidence
// matrices over stored edges and derives node-centric dual hypergraphs.
//
// # Event System
//
// Services publish events via EventBus. The hub package fans them out to
// Server-Sent Events clients.
package service
