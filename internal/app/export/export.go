package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/model"
	"scribe/internal/app/repository/csvstore"
)

// Format is a history download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv or xlsx, case-insensitively. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", apperrors.ErrArgumentValidation.Withf("unsupported export format %q (expected csv or xlsx)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename returns the download name for an export taken at now.
func (f Format) Filename(now time.Time) string {
	return fmt.Sprintf("transcriptions_%s.%s", now.Format("20060102_150405"), f)
}

// Write encodes records in the given format.
func Write(w io.Writer, format Format, records []model.TranscriptionRecord) error {
	switch format {
	case FormatCSV:
		return csvstore.Encode(w, records)
	case FormatXLSX:
		return ToExcel(w, records)
	default:
		return apperrors.ErrArgumentValidation.Withf("unsupported export format %q", format)
	}
}

// ToExcel writes records as a single-sheet workbook with the history header.
func ToExcel(w io.Writer, records []model.TranscriptionRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "create sheet")
	}

	headerRow := sheet.AddRow()
	for _, name := range csvstore.Header {
		headerRow.AddCell().Value = name
	}

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = r.FormattedTimestamp()
		row.AddCell().Value = r.Filename
		if r.DurationSeconds != nil {
			row.AddCell().SetFloat(*r.DurationSeconds)
		} else {
			row.AddCell().Value = ""
		}
		row.AddCell().Value = r.Model
		row.AddCell().Value = r.TranscriptionText
	}

	if err := file.Write(w); err != nil {
		return apperrors.ErrStorageIO.Wrap(err, "write workbook")
	}
	return nil
}
