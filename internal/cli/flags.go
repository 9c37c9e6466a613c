package cli

import (
	"time"

	"qtr/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	SpecDir    string
	Engine     string
	NoBuild    bool
	NameFilter string
	Compare    string
	Timeout    time.Duration
	Workers    int
	Progress   bool
	Verbose    bool
	TestCases  bool
	Plain      bool
	Suffix     string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		SpecDir:    f.SpecDir,
		Engine:     f.Engine,
		NoBuild:    f.NoBuild,
		NameFilter: f.NameFilter,
		Compare:    f.Compare,
		Timeout:    f.Timeout,
		Workers:    f.Workers,
		Progress:   f.Progress,
		Verbose:    f.Verbose,
		TestCases:  f.TestCases,
		Plain:      f.Plain,
		Suffix:     f.Suffix,
	}
}
