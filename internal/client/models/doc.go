// Package models defines the entity graph exposed by the client: profiles,
// posts, conversations and chat messages.
//
// Entities are immutable snapshots. Relations between them are stored as
// identifiers and resolved on first use through a Resolver; each resolved
// relation is cached on the instance that asked for it.
package models
