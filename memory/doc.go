// Package memory implements the flat byte addressed memory of the virtual
// processor.
//
// Memory is fixed in size at creation and zero initialized. Every access
// is bounds checked: an access whose span leaves the memory fails with
// ErrRange rather than wrapping or truncating.
package memory
