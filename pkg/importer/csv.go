package importer

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/dvc-ops/provgate/pkg/domain/interfaces"
	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Column headers expected in the input file, matched case-insensitively.
// The first five are mandatory for every row.
var (
	mandatoryColumns = []string{"fullname", "phone", "email", "username", "password"}
	optionalColumns  = []string{"org_parent", "org_dept", "job_title"}
)

// CSV reads provisioning records from a CSV file with a header row. Any
// failure here (unreadable file, missing mandatory columns, invalid row) is
// batch-fatal and reported before provisioning begins.
type CSV struct {
	path string
}

// NewCSV creates a record source for the given file path
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

var _ interfaces.RecordSource = (*CSV)(nil)

// Records reads, normalizes, and validates every row in order
func (c *CSV) Records(ctx context.Context) ([]model.ImportRecord, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open import file",
			goerr.T(model.ErrTagValidation),
			goerr.V("path", c.path))
	}
	defer f.Close()

	return parse(f, c.path)
}

func parse(r io.Reader, path string) ([]model.ImportRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read header row",
			goerr.T(model.ErrTagValidation),
			goerr.V("path", path))
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid import file",
			goerr.T(model.ErrTagValidation),
			goerr.V("path", path))
	}

	var records []model.ImportRecord
	for index := 0; ; index++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read row",
				goerr.T(model.ErrTagValidation),
				goerr.V("path", path),
				goerr.V("row", index+2))
		}

		record := model.ImportRecord{
			Index:            index,
			FullName:         cell(row, columns, "fullname"),
			Phone:            cell(row, columns, "phone"),
			Email:            cell(row, columns, "email"),
			Username:         cell(row, columns, "username"),
			Password:         cell(row, columns, "password"),
			OrgParentKeyword: cell(row, columns, "org_parent"),
			OrgDeptKeyword:   cell(row, columns, "org_dept"),
			JobTitle:         cell(row, columns, "job_title"),
		}
		if err := record.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid row",
				goerr.T(model.ErrTagValidation),
				goerr.V("path", path),
				goerr.V("row", index+2))
		}
		records = append(records, record)
	}
	return records, nil
}

// mapColumns resolves header names to indices and checks mandatory columns
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range mandatoryColumns {
		if _, ok := columns[name]; !ok {
			return nil, goerr.New("mandatory column is missing",
				goerr.T(model.ErrTagValidation),
				goerr.V("column", name))
		}
	}
	return columns, nil
}

func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return normalize(row[idx])
}

// normalize trims whitespace and strips the trailing ".0" that spreadsheet
// exports append to numeric-looking values such as phone numbers.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, ".0") && isNumeric(s[:len(s)-2]) {
		return s[:len(s)-2]
	}
	return s
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
