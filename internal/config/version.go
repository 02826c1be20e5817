package config

// Build metadata, set from main via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags records the build metadata
func SetBuildFlags(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if date != "" {
		Date = date
	}
}

// VersionString is the one-line version banner
func VersionString() string {
	if Commit == "unknown" {
		return "txprep " + Version
	}
	return "txprep " + Version + " (commit " + Commit + ", built " + Date + ")"
}
