// Package compare judges engine output against the expected block of a case.
package compare

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Mode selects how line counts are treated
type Mode string

const (
	// ModeStrict requires the same number of lines once trailing empty lines are dropped
	ModeStrict Mode = "strict"
	// ModePrefix only walks as many line pairs as the shorter side has
	ModePrefix Mode = "prefix"
)

// ParseMode validates a mode name from configuration or flags
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStrict, "":
		return ModeStrict, nil
	case ModePrefix:
		return ModePrefix, nil
	}
	return "", errors.Errorf("unknown compare mode %q (want %q or %q)", s, ModeStrict, ModePrefix)
}

// Comparator compares expected and actual output
type Comparator struct {
	mode Mode
}

// New creates a Comparator for the given mode
func New(mode Mode) *Comparator {
	if mode == "" {
		mode = ModeStrict
	}
	return &Comparator{mode: mode}
}

// Mode returns the comparison mode
func (c *Comparator) Mode() Mode {
	return c.mode
}

// Matches reports whether actual satisfies expected. Paired lines are compared
// after trimming surrounding whitespace.
func (c *Comparator) Matches(expected, actual string) bool {
	exp := lines(expected)
	act := lines(actual)

	n := len(exp)
	if c.mode == ModeStrict {
		exp = dropTrailingEmpty(exp)
		act = dropTrailingEmpty(act)
		if len(exp) != len(act) {
			return false
		}
		n = len(exp)
	} else if len(act) < n {
		n = len(act)
	}

	for i := 0; i < n; i++ {
		if strings.TrimSpace(exp[i]) != strings.TrimSpace(act[i]) {
			return false
		}
	}
	return true
}

// Matches compares with the default strict mode
func Matches(expected, actual string) bool {
	return New(ModeStrict).Matches(expected, actual)
}

// Diff renders a line-oriented diff, "-" for expected-only and "+" for actual-only lines
func Diff(expected, actual string) string {
	exp := joinLines(trimAll(dropTrailingEmpty(lines(expected))))
	act := joinLines(trimAll(dropTrailingEmpty(lines(actual))))

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(exp, act)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func lines(s string) []string {
	out := strings.Split(s, "\n")
	for i, l := range out {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

func dropTrailingEmpty(ls []string) []string {
	for len(ls) > 0 && strings.TrimSpace(ls[len(ls)-1]) == "" {
		ls = ls[:len(ls)-1]
	}
	return ls
}

func joinLines(ls []string) string {
	if len(ls) == 0 {
		return ""
	}
	return strings.Join(ls, "\n") + "\n"
}

func trimAll(ls []string) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = strings.TrimSpace(l)
	}
	return out
}
