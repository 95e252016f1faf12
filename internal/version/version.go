// Package version reports the build identity of calref. Release builds set
// the variables below with ldflags; other builds fall back to the VCS stamp
// the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/jmylchreest/calref/internal/version.Version=x.y.z"
// (likewise Commit and Date).
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var readBuildInfo = debug.ReadBuildInfo

// Info identifies a build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo merges ldflags values with the embedded build settings. Values set
// through ldflags win.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String renders the info as a single line, omitting unknown fields.
func (i Info) String() string {
	var details []string
	if i.Commit != "" {
		commit := i.Commit[:min(len(i.Commit), 8)]
		if i.Modified {
			commit += "-dirty"
		}
		details = append(details, "commit "+commit)
	}
	if i.Date != "" {
		details = append(details, "built "+i.Date)
	}
	details = append(details, i.GoVersion, i.Platform)

	return fmt.Sprintf("calref version %s (%s)", i.Version, strings.Join(details, ", "))
}

// String returns the full version line for the running binary.
func String() string {
	return GetInfo().String()
}

// Short returns the bare version for cobra's --version flag.
func Short() string {
	return GetInfo().Version
}
