package app

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestVCSStamp_FillsUnknown(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
	}

	commit, built := vcsStamp(settings, "unknown", "unknown")

	if commit != "0123456789ab" {
		t.Errorf("commit = %q, want shortened revision", commit)
	}
	if built != "2026-10-01T12:00:00Z" {
		t.Errorf("built = %q, want vcs.time", built)
	}
}

func TestVCSStamp_LdflagsWin(t *testing.T) {
	settings := []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}

	commit, built := vcsStamp(settings, "abc123", "2026-01-01")

	if commit != "abc123" || built != "2026-01-01" {
		t.Errorf("got (%q, %q), want ldflags values kept", commit, built)
	}
}

func TestBuildVersion_IncludesVersion(t *testing.T) {
	if got := BuildVersion(); !strings.HasPrefix(got, Version+" (commit: ") {
		t.Errorf("BuildVersion() = %q", got)
	}
}
