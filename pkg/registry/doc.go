// Package registry provides the in-memory registries chartify keeps at
// runtime: a generic, thread-safe name -> item Registry, and Instances, the
// mapping from instance key to live chart handle that guarantees at most one
// live chart per key.
//
// Registries are plain values owned by whoever constructs them. There is no
// process-wide instance.
package registry
