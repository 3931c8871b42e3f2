// Package testutil provides fakes for testing chartify components.
//
// The fakes stand in for the two external collaborators of the lifecycle
// controller:
//   - FakeEngine / FakeHandle: a rendering engine that records calls
//   - FakeBinder / FakeElement / FakeSurface: an in-memory document binding
//
// TestEnvironment points chartify's config and state directories into a
// temp directory and writes the page, script and config files a test needs.
//
// Every fake counts the calls made to it so tests can assert on exactly how
// often a handle was redrawn or destroyed.
package testutil
