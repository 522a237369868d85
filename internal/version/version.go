// Package version holds the devcli build version, injected at link time.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the firmware CLI
	Version = "1.0.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

// Info describes the running build.
type Info struct {
	Version   string
	Base      string
	Metadata  string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

// GetInfo parses Version and collects the build information.
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return &Info{
		Version:   Version,
		Base:      fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch()),
		Metadata:  sv.Metadata(),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}, nil
}

// Short returns "devcli v<version>" with the short commit hash when known.
func Short() string {
	text := "devcli v" + Version
	if GitCommit != "unknown" && GitCommit != "" {
		commit := GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		text += " (" + commit + ")"
	}
	return text
}

// Detailed returns one "key: value" line per build attribute.
func Detailed() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("devcli v%s (error: %v)", Version, err)
	}

	lines := []string{
		"devcli v" + info.Version,
		"Base Version: " + info.Base,
	}
	if info.Metadata != "" {
		lines = append(lines, "Build Metadata: "+info.Metadata)
	}
	lines = append(lines,
		"Git Commit: "+info.GitCommit,
		"Build Date: "+info.BuildDate,
		"Go Version: "+info.GoVersion,
		"Platform: "+info.Platform,
	)
	return strings.Join(lines, "\n")
}

// Satisfies reports whether the running version matches a semver constraint
// such as ">= 1.0.0".
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint '%s': %w", constraint, err)
	}
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return c.Check(sv), nil
}

// SetBuildInfo sets build information (used for testing)
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}
