// Package build describes the running binary.
package build

import "runtime/debug"

const repoURL = "https://github.com/bnema/sitestyle"

// Info is filled from ldflags by main.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// WithModuleFallback fills an empty Version from the module build info, which
// is set for binaries built with go install.
func (i Info) WithModuleFallback() Info {
	if i.Version != "" && i.Version != "dev" {
		return i
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	return i
}

func Contributors() []string {
	return []string{"bnema"}
}

func RepoURL() string {
	return repoURL
}
