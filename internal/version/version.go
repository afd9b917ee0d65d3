package version

import (
	"fmt"
	"runtime"
)

// Populated at build time via -ldflags.
var (
	// Version is the current version of the update client
	Version = "dev"

	// BuildDate is the build date
	BuildDate = "unknown"

	// GoVersion is the golang version
	GoVersion = runtime.Version()

	// Platform is the running platform
	Platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// Info represents version information
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns version information
func GetInfo() Info {
	return Info{
		Version:   Version,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}
}

// String returns a string representation of version information
func (i Info) String() string {
	return fmt.Sprintf("Version: %s\nBuild Date: %s\nGo Version: %s\nPlatform: %s",
		i.Version, i.BuildDate, i.GoVersion, i.Platform)
}

// UserAgent returns the User-Agent value sent with outbound requests.
func UserAgent() string {
	return "VolaryDDNS-Client/" + Version
}
