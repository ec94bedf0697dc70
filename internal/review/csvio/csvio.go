// Package csvio encodes and decodes the review collection in the tool's
// delimited interchange format. The same column set is used by bulk import,
// bulk export, and the round-trip guarantee between them.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fairlens/internal/review/models"
)

// Columns is the canonical header, in export order. Import requires every
// column to be present; extra columns in uploaded files are ignored.
var Columns = []string{
	"employee_id",
	"role",
	"gender",
	"kpi_rating",
	"competency_rating",
	"initiative_rating",
	"overall_rating",
	"comment",
}

// Decode reads a full CSV document and returns the records it contains.
// Nothing is returned unless the entire document parses, so callers can
// replace store contents atomically.
func Decode(r io.Reader) ([]models.ReviewRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // header decides width; extra columns allowed

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %v", missing)
	}

	records := []models.ReviewRecord{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		record, err := decodeRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeRow(row []string, index map[string]int) (models.ReviewRecord, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}
	rating := func(name string) (int, error) {
		v, err := strconv.Atoi(field(name))
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not an integer", name, field(name))
		}
		return v, nil
	}

	var record models.ReviewRecord
	var err error
	record.EmployeeID = field("employee_id")
	record.Role = field("role")
	record.Gender = field("gender")
	record.Comment = field("comment")
	if record.KPI, err = rating("kpi_rating"); err != nil {
		return models.ReviewRecord{}, err
	}
	if record.Competency, err = rating("competency_rating"); err != nil {
		return models.ReviewRecord{}, err
	}
	if record.Initiative, err = rating("initiative_rating"); err != nil {
		return models.ReviewRecord{}, err
	}
	if record.Overall, err = rating("overall_rating"); err != nil {
		return models.ReviewRecord{}, err
	}
	return record, nil
}

// Encode writes the collection in the canonical column order. The output is
// accepted unchanged by Decode.
func Encode(w io.Writer, records []models.ReviewRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.EmployeeID,
			r.Role,
			r.Gender,
			strconv.Itoa(r.KPI),
			strconv.Itoa(r.Competency),
			strconv.Itoa(r.Initiative),
			strconv.Itoa(r.Overall),
			r.Comment,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
