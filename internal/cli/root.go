package cli

import "fmt"

var (
	version = "dev"     // semantic version (e.g., "v1.2.3")
	commit  = "none"    // git commit SHA
	date    = "unknown" // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with values
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// versionTemplate returns the --version template for cobra.
func versionTemplate() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

// userAgent identifies the crawler to ekidata.jp.
func userAgent() string {
	return appName + "/" + version
}
