// Package auth issues and verifies bearer tokens, hashes account passwords
// and resolves request credentials into the ActorRef consumed by commands and
// queries.
package auth
