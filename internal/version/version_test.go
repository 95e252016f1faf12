package version

import (
	"runtime/debug"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "development build",
			info: Info{Version: "dev", GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want: "calref version dev (go1.25.1, linux/amd64)",
		},
		{
			name: "release build",
			info: Info{Version: "1.2.0", Commit: "0123456789abcdef", Date: "2026-01-02T03:04:05Z", GoVersion: "go1.25.1", Platform: "linux/arm64"},
			want: "calref version 1.2.0 (commit 01234567, built 2026-01-02T03:04:05Z, go1.25.1, linux/arm64)",
		},
		{
			name: "dirty short commit",
			info: Info{Version: "dev", Commit: "abc", Modified: true, GoVersion: "go1.25.1", Platform: "darwin/arm64"},
			want: "calref version dev (commit abc-dirty, go1.25.1, darwin/arm64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() {
		readBuildInfo = orig
		Version, Commit, Date = origVersion, origCommit, origDate
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGetInfoBuildSettings(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "fedcba9876543210"},
			{Key: "vcs.time", Value: "2026-05-06T07:08:09Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})
	Version, Commit, Date = "dev", "", ""

	got := GetInfo()
	if got.Version != "1.3.0" || got.Commit != "fedcba9876543210" || got.Date != "2026-05-06T07:08:09Z" || !got.Modified {
		t.Errorf("GetInfo() = %+v", got)
	}
}

func TestGetInfoLdflagsWin(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v1.3.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "fedcba9876543210"}},
	})
	Version, Commit, Date = "2.0.0", "0123456789abcdef", "2026-01-02T03:04:05Z"

	got := GetInfo()
	if got.Version != "2.0.0" || got.Commit != "0123456789abcdef" || got.Date != "2026-01-02T03:04:05Z" {
		t.Errorf("GetInfo() = %+v, want ldflags values", got)
	}
}

func TestGetInfoWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil)
	Version, Commit, Date = "dev", "", ""

	got := GetInfo()
	if got.Version != "dev" || got.Commit != "" || got.Modified {
		t.Errorf("GetInfo() = %+v", got)
	}
	if got.GoVersion == "" || got.Platform == "" {
		t.Error("GetInfo() should always report toolchain and platform")
	}
}

func TestShort(t *testing.T) {
	stubBuildInfo(t, nil)
	Version = "1.0.0"

	if got := Short(); got != "1.0.0" {
		t.Errorf("Short() = %q, want 1.0.0", got)
	}
}
