// Package preflight validates the environment before a run: external
// binaries, endpoint configuration, directory access, and waiting input.
package preflight
