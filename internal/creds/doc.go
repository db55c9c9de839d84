// Package creds models the platform session credential as a capability.
//
// The pipeline consumes credentials through the Provider interface and
// never refreshes or persists them itself; session lifecycle management
// stays with the caller. StaticProvider adapts credentials supplied
// through configuration.
package creds
