package domain

// TestCase is a single query and the output it is expected to produce
type TestCase struct {
	Query    string // Query text passed to the engine
	Expected string // Expected output, empty means no rows
	Line     int    // Line of the open-marker in the spec file
}

// TestFile represents a parsed spec file
type TestFile struct {
	Name   string     // Spec path without its extension
	Path   string     // Path the file was read from
	DBPath string     // Database the cases run against
	Cases  []TestCase // Cases in the order they appear in the file
}
