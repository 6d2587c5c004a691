// Package ingest parses uploaded antenna files into records the rest of
// the service works with. Parsing is strict about the file as a whole
// (a missing column or an unreadable header rejects the upload) but
// lenient about individual rows: a bad row is reported and skipped, the
// rest of the file still loads.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pnf4665jds/sectorviz/pkg/models"
)

// Canonical column names. Header matching is case-insensitive and
// ignores surrounding whitespace and a UTF-8 BOM.
const (
	ColEnodebID  = "ENODEB_ID"
	ColCellID    = "CELL_ID"
	ColLongitude = "LONGITUDE"
	ColLatitude  = "LATITUDE"
	ColAzimuth   = "AZIMUTH"
	ColBeamwidth = "BEAMWIDTH_H"
)

// requiredColumns is the canonical order used in error messages.
var requiredColumns = []string{ColEnodebID, ColCellID, ColLongitude, ColLatitude, ColAzimuth, ColBeamwidth}

// ErrEmptyFile is returned when the upload has no header row.
var ErrEmptyFile = errors.New("file has no header row")

// ErrUnreadable is returned when the upload cannot be read as CSV at
// all, for instance broken quoting in the header. The whole upload is
// rejected.
var ErrUnreadable = errors.New("unreadable as CSV")

// MissingColumnsError is returned when the header lacks one or more
// required columns. The whole upload is rejected.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ParseResult is the outcome of parsing one upload.
type ParseResult struct {
	Records   []models.AntennaRecord
	RowsTotal int
	Skipped   []models.RowError
}

// RecordSource turns an uploaded file into antenna records.
type RecordSource interface {
	Parse(r io.Reader) (*ParseResult, error)
}

type csvSource struct{}

// NewCSVSource returns a RecordSource for comma-separated files.
func NewCSVSource() RecordSource {
	return &csvSource{}
}

func (s *csvSource) Parse(r io.Reader) (*ParseResult, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	index, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Records: []models.AntennaRecord{}}
	rowNum := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		result.RowsTotal++
		if err != nil {
			result.Skipped = append(result.Skipped, models.RowError{
				Row:    rowNum,
				Reason: rowReason(err),
			})
			continue
		}

		rec, rowErr := buildRecord(index, row, rowNum)
		if rowErr != nil {
			result.Skipped = append(result.Skipped, *rowErr)
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// resolveColumns maps each required column to its position in the
// header. Duplicate headers keep the first occurrence.
func resolveColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(requiredColumns))
	for i, cell := range header {
		name := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(cell, "\uFEFF")))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return index, nil
}

func buildRecord(index map[string]int, row []string, rowNum int) (models.AntennaRecord, *models.RowError) {
	rec := models.AntennaRecord{
		EnodebID: strings.TrimSpace(row[index[ColEnodebID]]),
		CellID:   strings.TrimSpace(row[index[ColCellID]]),
	}

	numeric := []struct {
		col string
		dst *float64
	}{
		{ColLatitude, &rec.Latitude},
		{ColLongitude, &rec.Longitude},
		{ColAzimuth, &rec.Azimuth},
		{ColBeamwidth, &rec.Beamwidth},
	}
	for _, f := range numeric {
		raw := strings.TrimSpace(row[index[f.col]])
		if raw == "" {
			return models.AntennaRecord{}, &models.RowError{
				Row:    rowNum,
				Column: f.col,
				Reason: "empty value",
			}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.AntennaRecord{}, &models.RowError{
				Row:    rowNum,
				Column: f.col,
				Value:  raw,
				Reason: "not a number",
			}
		}
		// ParseFloat accepts "NaN" and "Inf"; neither is a usable
		// coordinate or angle and both poison JSON encoding later.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.AntennaRecord{}, &models.RowError{
				Row:    rowNum,
				Column: f.col,
				Value:  raw,
				Reason: "not a finite number",
			}
		}
		*f.dst = v
	}

	return rec, nil
}

// rowReason strips the csv package's "record on line N:" prefix; the
// RowError already carries the row number.
func rowReason(err error) string {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
