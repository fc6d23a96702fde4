package version

import "fmt"

// These variables are overridden at build time using -ldflags.
// Keep sensible defaults for local development.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// String is the one-line form printed by the CLIs.
func String() string {
	s := fmt.Sprintf("%s (%s)", Version, Commit)
	if Dirty == "true" {
		s += " dirty"
	}
	if Date != "" {
		s += " built " + Date
	}
	return s
}
