// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the API server
func Info() BuildInfo { return InfoFor("tglang-api") }

// InfoFor returns the build information stamped for the named binary. The version, commit,
// and date variables are intended to be set at build time using -ldflags.
func InfoFor(service string) BuildInfo {
	// Set via -ldflags "-X 'tglang/internal/core/version.version=v0.0.1'
	// -X 'tglang/internal/core/version.commit=abcd' -X 'tglang/internal/core/version.date=2026-10-19'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
