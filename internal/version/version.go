package version

// Version is the current sprintctl version, overridden at build time with
// -ldflags "-X github.com/hashicorp-forge/sprintctl/internal/version.Version=...".
var Version = "0.1.0"
