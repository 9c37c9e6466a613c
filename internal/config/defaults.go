package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSpecDir is where spec files are discovered, relative to the project
	DefaultSpecDir = "tests"
	// DefaultEngineBinary is the engine built by the build command
	DefaultEngineBinary = "target/debug/twin-query"
	// DefaultDataDir holds generated fixtures
	DefaultDataDir = "data"
	// DefaultCompareMode is the default comparator mode
	DefaultCompareMode = "strict"
	// DefaultOutputDir is where the last run record is kept
	DefaultOutputDir = ".qtr"
	// DefaultOutputFile is the last run record file name
	DefaultOutputFile = "last-run.json"
	// DefaultWorkers runs spec files one at a time
	DefaultWorkers = 1
	// DefaultTimeout of zero leaves engine calls unbounded
	DefaultTimeout time.Duration = 0
	// FileName is the optional project configuration file
	FileName = "qtr.yaml"
)

// DefaultBuildCommand builds the engine before any test runs
var DefaultBuildCommand = []string{"cargo", "build"}

// DefaultPathsToIgnore are directories never scanned for spec files
var DefaultPathsToIgnore = []string{
	"target",
	"node_modules",
	"vendor",
}
