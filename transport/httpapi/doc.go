// Package httpapi exposes the contacts service over HTTP using gin. Every
// JSON response is wrapped in a success or error envelope; categorized
// errors map onto their HTTP status and anything else becomes a 500.
package httpapi
