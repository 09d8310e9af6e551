// Package command exposes go-command compatible command handlers implementing
// go-contacts business logic (contact writes, registration, account
// administration). Commands are wired by the service layer and can be invoked
// by any transport.
package command
