package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// These variables are set during build time
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// BuildInfo describes the running linecount binary
type BuildInfo struct {
	Version   string `json:"version"`
	SemVer    string `json:"semver"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`

	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`

	// Module is the main module path recorded by the Go toolchain
	Module string `json:"module"`
	Deps   int    `json:"deps"`
}

// GetBuildInfo collects version variables and toolchain metadata
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		SemVer:    strings.Split(Version, "-")[0],
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Module:    "unknown",
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Path != "" {
			info.Module = bi.Main.Path
		}
		info.Deps = len(bi.Deps)

		// vcs stamping fills the commit when ldflags did not
		if info.GitCommit == "unknown" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					info.GitCommit = s.Value
				}
			}
		}
	}

	return info
}

// FullVersion returns a formatted string with complete version information
func FullVersion() string {
	info := GetBuildInfo()

	var b strings.Builder
	fmt.Fprintf(&b, "linecount %s\n", info.Version)
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "  Semantic Ver: %s\n", info.SemVer)
	fmt.Fprintf(&b, "  Build Date:   %s\n", info.BuildDate)
	fmt.Fprintf(&b, "  Commit:       %s\n", info.GitCommit)
	fmt.Fprintf(&b, "  Go Version:   %s\n", info.GoVersion)
	fmt.Fprintf(&b, "  Platform:     %s\n", info.Platform)
	fmt.Fprintf(&b, "  Module:       %s\n", info.Module)
	fmt.Fprintf(&b, "  Dependencies: %d\n", info.Deps)

	return b.String()
}
