// Package version exposes the build metadata stamped into the shopd
// binary via -ldflags at release time.
package version

import (
	"fmt"
	"runtime"
)

// Set by the linker, see cmd/shopd.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Info is the full build description, also served by "shopd version".
type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func Get() Info {
	return Info{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("Shopd %s (%s) built at %s on %s",
		i.Version, i.GitCommit, i.BuildTime, i.Platform)
}
