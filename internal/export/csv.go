// Package export renders the currently filtered prescription list into
// client-downloadable files.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

var csvHeader = []string{"ID", "Patient", "Medication", "Dosage", "Instructions", "Issued At", "Clinician"}

// PrescriptionsCSV writes the list as UTF-8 CSV with every field
// double-quoted, matching the established export format consumers of
// the previous exports already parse.
func PrescriptionsCSV(w io.Writer, prescriptions []model.Prescription) error {
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}

	for _, p := range prescriptions {
		issued := ""
		if p.IssuedAt != nil {
			issued = p.IssuedAt.Format("2006-01-02")
		}
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Patient.FullName(),
			p.Medication,
			p.Dosage,
			p.Instructions,
			issued,
			p.Clinician.FullName,
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}

// CSVFilename names the download after the export date.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("prescriptions-%s.csv", now.Format("2006-01-02"))
}

// PDFFilename names a single prescription download.
func PDFFilename(id int64) string {
	return fmt.Sprintf("prescription-%d.pdf", id)
}
