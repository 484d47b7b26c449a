// Package version reports which ctxgen build is running.
//
// Release builds stamp Version, Commit and BuildTime through -ldflags:
//
//	go build -ldflags "-X ctxgen/pkg/version.Version=1.2.3 -X ctxgen/pkg/version.Commit=abc1234"
//
// Anything left unstamped is filled from the module and VCS data the Go
// toolchain embeds in the binary, when there is any.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// shortCommit is the length commits are abbreviated to.
const shortCommit = 7

// Info describes a ctxgen build.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Modified  bool
	GoVersion string
	Platform  string
}

// Get returns the build information of the running binary.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

// resolve merges the ldflags values with bi, preferring the former.
func resolve(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi == nil {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	if len(info.Commit) > shortCommit {
		info.Commit = info.Commit[:shortCommit]
	}
	return info
}

// Short returns the version alone.
func (i Info) Short() string {
	return i.Version
}

// String renders the build on one line, e.g.
//
//	ctxgen version 1.2.3 (abc1234-dirty, 2024-04-27T15:04:05Z) go1.24.2 linux/amd64
//
// Unknown commit and build time are left out.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString("ctxgen version ")
	sb.WriteString(i.Version)

	var details []string
	if i.Commit != "" {
		commit := i.Commit
		if i.Modified {
			commit += "-dirty"
		}
		details = append(details, commit)
	}
	if i.BuildTime != "" {
		details = append(details, i.BuildTime)
	}
	if len(details) > 0 {
		sb.WriteString(" (" + strings.Join(details, ", ") + ")")
	}

	sb.WriteString(" " + i.GoVersion + " " + i.Platform)
	return sb.String()
}
