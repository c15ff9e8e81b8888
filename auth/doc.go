// Package auth provides TokenProvider implementations for the request
// engine. The engine consults its provider on every attempt, so whatever a
// provider returns at that moment is the token that goes on the wire, and
// a refresh mid-retry-sequence takes effect on the next attempt.
package auth
