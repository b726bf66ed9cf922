// Package version records build metadata for the restgen binary.
package version

// Version is overridden at build time via -ldflags.
var Version = "0.2.0"

// GitCommit is the commit hash the binary was built from, when known.
var GitCommit = ""
