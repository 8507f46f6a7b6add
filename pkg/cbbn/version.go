package cbbn

// Populated at build time via -ldflags "-X".
var (
	Version = "v0.0.0-in-progress"
	Commit  = "unknown"
)

// BuildVersion returns the semantic version set at build time, followed by
// the commit when one was recorded.
func BuildVersion() string {
	if Commit == "" || Commit == "unknown" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
