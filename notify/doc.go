// Package notify delivers the best-effort "contact created" notification,
// either as a SendGrid email to the owning account or as a masked log line.
package notify
