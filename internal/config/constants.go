// Package config holds process-wide, set-once state: test-mode
// normalization and the diagnostic environment variables the core reads at
// startup.
package config

// IsTestMode indicates the process is running under `go test`. Nothing in
// this module reads it: Subs descriptor dumps render variables as v<id>
// whether or not it is set.
var IsTestMode = false
