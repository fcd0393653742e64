//go:build trace
// +build trace

package build

// LogLevel specifies a log level of trace, used by development builds that
// need to follow every derivation step.
var LogLevel = "trace"
