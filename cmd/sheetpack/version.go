package main

import (
	"fmt"
	rtdebug "runtime/debug"
)

// Overridden at release time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion assembles the --version string, falling back to module build
// info when no release metadata was linked in.
func buildVersion() string {
	v := version
	if v == "dev" {
		if info, ok := rtdebug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit %s, built %s)", v, commit, date)
}

func init() {
	rootCmd.Version = buildVersion()
	rootCmd.SetVersionTemplate("sheetpack {{.Version}}\n")
}
