// Package version reports how the running quill binary was built and
// installed.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Info describes the running binary.
type Info struct {
	Version   string        `json:"version"`
	GoVersion string        `json:"goVersion"`
	Platform  string        `json:"platform"`
	Install   InstallMethod `json:"install"`
}

// Current returns build details for the running binary. v is the version
// set at build time via ldflags, possibly empty.
func Current(v string) Info {
	return Info{
		Version:   Effective(v),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Install:   DetectInstallMethod(),
	}
}

// String formats the info for `quill version`.
func (i Info) String() string {
	return fmt.Sprintf("quill %s (%s, %s, installed via %s)", i.Version, i.GoVersion, i.Platform, i.Install)
}

// Effective returns v, falling back to the module version or VCS revision
// recorded in the build info.
func Effective(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) string {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}

	ver := "devel+" + shortRevision(revision)
	if dirty {
		ver += "+dirty"
	}
	return ver
}

// shortRevision returns the first 12 chars of a revision.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// UpgradeCommand returns how to upgrade an install of the given kind.
func UpgradeCommand(method InstallMethod) string {
	if method == InstallMethodGo {
		return "go install github.com/marcus/quill/cmd/quill@latest"
	}
	return "https://github.com/marcus/quill/releases/latest"
}
