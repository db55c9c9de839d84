// Package metadata defines the publication request value objects and their
// validation against platform constraints.
//
// Validation is pure: every rule is evaluated independently so a caller
// sees all violations at once, and no network access happens before the
// request is known to be well-formed.
package metadata
