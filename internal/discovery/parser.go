package discovery

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"qtr/internal/domain"
)

const (
	// OpenMarker starts the query section of a case
	OpenMarker = ">>>>>>>>>>>>>>>>>>>>>>>>>>>>>"
	// CloseMarker ends the query section and starts the expected result
	CloseMarker = "<<<<<<<<<<<<<<<<<<<<<<<<<<<<<"
)

var (
	// ErrMalformedSpec is matched by every parse error
	ErrMalformedSpec = errors.New("malformed spec")
	// ErrUnterminatedQueryBlock is matched when an open-marker is never closed
	ErrUnterminatedQueryBlock = errors.New("unterminated query block")
)

// MalformedSpecError reports where a spec file stopped making sense
type MalformedSpecError struct {
	Path   string
	Line   int
	Reason string
	kind   error
}

func (e *MalformedSpecError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Is lets errors.Is match both ErrMalformedSpec and the specific kind
func (e *MalformedSpecError) Is(target error) bool {
	return target == ErrMalformedSpec || (e.kind != nil && target == e.kind)
}

type parseState int

const (
	stateExpectHeader parseState = iota
	stateExpectOpen
	stateReadingQuery
	stateReadingResult
)

func (s parseState) String() string {
	switch s {
	case stateExpectHeader:
		return "header"
	case stateExpectOpen:
		return "awaiting block"
	case stateReadingQuery:
		return "query"
	case stateReadingResult:
		return "result"
	}
	return "unknown"
}

type lineClass int

const (
	lineBlank lineClass = iota
	lineOpen
	lineClose
	lineContent
)

func classify(line string) lineClass {
	switch {
	case strings.TrimSpace(line) == "":
		return lineBlank
	case line == OpenMarker:
		return lineOpen
	case line == CloseMarker:
		return lineClose
	}
	return lineContent
}

// specMachine holds the accumulators owned by the parse states
type specMachine struct {
	path    string
	state   parseState
	file    *domain.TestFile
	query   []string
	result  []string
	openAt  int
	closed  bool
	lineNum int
}

type transition func(m *specMachine, line string) error

// transitions is keyed on the current state and the class of the incoming line.
// Blank lines are absent: they are dropped in every state.
var transitions = map[parseState]map[lineClass]transition{
	stateExpectHeader: {
		lineOpen:    (*specMachine).missingHeader,
		lineClose:   (*specMachine).missingHeader,
		lineContent: (*specMachine).header,
	},
	stateExpectOpen: {
		lineOpen:    (*specMachine).open,
		lineClose:   (*specMachine).strayClose,
		lineContent: (*specMachine).strayContent,
	},
	stateReadingQuery: {
		lineOpen:    (*specMachine).open,
		lineClose:   (*specMachine).close,
		lineContent: (*specMachine).appendQuery,
	},
	stateReadingResult: {
		lineOpen:    (*specMachine).open,
		lineClose:   (*specMachine).strayClose,
		lineContent: (*specMachine).appendResult,
	},
}

func (m *specMachine) fail(reason string, kind error) error {
	return &MalformedSpecError{Path: m.path, Line: m.lineNum, Reason: reason, kind: kind}
}

func (m *specMachine) missingHeader(string) error {
	return m.fail("missing database path header", nil)
}

func (m *specMachine) header(line string) error {
	m.file.DBPath = strings.TrimSpace(line)
	m.state = stateExpectOpen
	return nil
}

func (m *specMachine) strayClose(string) error {
	return m.fail("close-marker outside a query block", nil)
}

func (m *specMachine) strayContent(string) error {
	return m.fail("content before the first query block", nil)
}

func (m *specMachine) open(string) error {
	if err := m.commit(); err != nil {
		return err
	}
	m.openAt = m.lineNum
	m.state = stateReadingQuery
	return nil
}

func (m *specMachine) close(string) error {
	if len(m.query) == 0 {
		return m.fail("empty query block", nil)
	}
	m.closed = true
	m.state = stateReadingResult
	return nil
}

func (m *specMachine) appendQuery(line string) error {
	m.query = append(m.query, line)
	return nil
}

func (m *specMachine) appendResult(line string) error {
	m.result = append(m.result, line)
	return nil
}

// commit turns the pending block into a case and resets the accumulators
func (m *specMachine) commit() error {
	if m.state != stateReadingQuery && m.state != stateReadingResult {
		return nil
	}
	if !m.closed {
		return &MalformedSpecError{
			Path:   m.path,
			Line:   m.openAt,
			Reason: "query block is never closed",
			kind:   ErrUnterminatedQueryBlock,
		}
	}
	m.file.Cases = append(m.file.Cases, domain.TestCase{
		Query:    strings.Join(m.query, "\n"),
		Expected: strings.Join(m.result, "\n"),
		Line:     m.openAt,
	})
	m.query = nil
	m.result = nil
	m.closed = false
	return nil
}

// Parse reads a spec file from r. The path is used for the test name and in errors.
func Parse(path string, r io.Reader) (*domain.TestFile, error) {
	m := &specMachine{
		path:  path,
		state: stateExpectHeader,
		file: &domain.TestFile{
			Name: TestName(path),
			Path: path,
		},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		m.lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		class := classify(line)
		if class == lineBlank {
			continue
		}
		if err := transitions[m.state][class](m, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if m.state == stateExpectHeader {
		return nil, &MalformedSpecError{Path: path, Reason: "missing database path header"}
	}
	if err := m.commit(); err != nil {
		return nil, err
	}
	return m.file, nil
}

// ParseFile opens and parses the spec file at path
func ParseFile(path string) (*domain.TestFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open spec file %s", path)
	}
	defer f.Close()
	return Parse(path, f)
}

// ParseAll parses the given paths in order and stops at the first error
func ParseAll(paths []string) ([]*domain.TestFile, error) {
	files := make([]*domain.TestFile, 0, len(paths))
	for _, p := range paths {
		tf, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, tf)
	}
	return files, nil
}

// TestName strips the extension from a spec path, whatever its length
func TestName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
