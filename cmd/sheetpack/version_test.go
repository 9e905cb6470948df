package main

import (
	"strings"
	"testing"
)

func TestBuildVersion(t *testing.T) {
	got := buildVersion()
	if !strings.Contains(got, "commit") || !strings.Contains(got, "built") {
		t.Errorf("buildVersion() = %q, want release metadata", got)
	}
	if rootCmd.Version == "" {
		t.Error("rootCmd.Version not set")
	}
}
