// Copyright (C) 2025 ScyllaDB

package version

import (
	"fmt"
	"runtime"
)

// Injected at build time.
var (
	gitVersion = "unknown"
	gitCommit  = "unknown"
	buildDate  = "unknown"
)

type Info struct {
	GitVersion string
	GitCommit  string
	BuildDate  string
	GoVersion  string
}

func Get() Info {
	return Info{
		GitVersion: gitVersion,
		GitCommit:  gitCommit,
		BuildDate:  buildDate,
		GoVersion:  runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s) built on %s with %s", i.GitVersion, i.GitCommit, i.BuildDate, i.GoVersion)
}
