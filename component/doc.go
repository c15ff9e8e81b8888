// Package component defines the lifecycle interfaces implemented by
// managed pieces of the SDK, such as the HTTP client component.
package component
