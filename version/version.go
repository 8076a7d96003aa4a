// Package version exposes build information embedded at compile time.
//
// Version and Commit are set via -ldflags:
//
//	go build -ldflags "-X github.com/dodd623/lucidscript/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// These are set at build time using -ldflags.
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info describes the running build. It is what GET /version returns.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get returns the build info, filling gaps from the embedded module
// build metadata when ldflags were not set.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = setting.Value
					if len(info.Commit) > 7 {
						info.Commit = info.Commit[:7]
					}
				}
			case "vcs.time":
				if info.BuildTime == "" {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						info.BuildTime = t.Format(time.RFC3339)
					}
				}
			}
		}
	}

	return info
}

// Short returns a compact version string for logs and banners.
func Short() string {
	info := Get()
	if info.Commit != "" {
		return fmt.Sprintf("%s-%s", info.Version, info.Commit)
	}
	return info.Version
}
