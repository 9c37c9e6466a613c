package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"qtr/internal/config"
	"qtr/internal/domain"
)

func TestFormatter_PrintRecord(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	f.PrintRecord(&domain.RunRecord{
		ID:          "0f8fad5b-d9cb-469f-a165-70867728950e",
		StartedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:    2 * time.Second,
		Files:       2,
		FilesPassed: 1,
		CasesPassed: 5,
		Workers:     1,
		Failure: &domain.Failure{
			Kind:     domain.KindComparisonMismatch,
			File:     "tests/b.test",
			Line:     4,
			Query:    "select 1",
			Expected: "1",
			Actual:   "2\n",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "│ Run ID                          │ 0f8fad5b                    │")
	assert.Contains(t, out, "│ Status                          │ failed                      │")
	assert.Contains(t, out, "│ Passed Cases                    │ 5                           │")
	assert.Contains(t, out, "│ Duration                        │ 2.00s                       │")
	assert.Contains(t, out, "│ Started                         │ 2024-03-01 12:00:00         │")
	assert.Contains(t, out, "ERROR\ntests/b.test:4\nselect 1\n")
}

func TestFormatter_PrintSpecList(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.New()
	cfg.ProjectPath = "/project"
	f := NewFormatter(cfg, &buf)

	files := []*domain.TestFile{
		{
			Path:   "/project/tests/a.test",
			DBPath: "data/artists.csv",
			Cases: []domain.TestCase{
				{Query: "select count(*) from artists", Line: 2},
				{Query: "select name\nfrom artists", Line: 6},
			},
		},
		{Path: "/project/tests/b.test", DBPath: "data/albums.csv"},
	}

	f.PrintSpecList(files, true)
	assert.Equal(t,
		"Found 2 spec file(s) with 2 case(s):\n\n"+
			"├── tests/a.test (data/artists.csv)\n"+
			"│   ├── 2: select count(*) from artists\n"+
			"│   └── 6: select name …\n"+
			"└── tests/b.test (data/albums.csv)\n"+
			"    └── (no cases found)\n",
		buf.String())

	buf.Reset()
	f.PrintSpecList(files, false)
	assert.Equal(t,
		"Found 2 spec file(s):\n\n"+
			"├── tests/a.test (data/artists.csv)\n"+
			"└── tests/b.test (data/albums.csv)\n",
		buf.String())
}
