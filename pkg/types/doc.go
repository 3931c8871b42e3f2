// Package types defines the core types and interfaces used throughout chartify.
// This includes the chart Spec and its lazily resolved Value fields, the
// Action variants accepted by the lifecycle controller, and the collaborator
// interfaces for the rendering engine (Engine, Handle, Surface) and the
// document binding layer (Element, Binder).
package types
