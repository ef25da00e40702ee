// Package codec converts leads to and from CSV and JSON files.
package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// exportHeader is the fixed CSV column order. Import reads these same
// column names case-insensitively.
var exportHeader = []string{"Name", "Company", "Email", "Phone", "Status", "Source", "Tags", "Last Contact"}

// ExportCSV renders leads as CSV. Every field is wrapped in double quotes
// and tags are joined with semicolons. Exporting nothing is an error so
// callers never write an empty file.
func ExportCSV(leads []model.Lead) ([]byte, error) {
	if len(leads) == 0 {
		return nil, common.ErrEmptyExport
	}

	rows := make([]string, 0, len(leads)+1)
	rows = append(rows, strings.Join(exportHeader, ","))

	for _, lead := range leads {
		fields := []string{
			lead.Name,
			lead.Company,
			lead.Email,
			lead.Phone,
			string(lead.Status),
			string(lead.Source),
			strings.Join(lead.Tags, ";"),
			lead.LastContact.UTC().Format(time.RFC3339),
		}
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = `"` + f + `"`
		}
		rows = append(rows, strings.Join(quoted, ","))
	}

	return []byte(strings.Join(rows, "\n")), nil
}

// ExportFilename returns the date-stamped name for an export file.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("leads_export_%s.csv", now.Format("2006-01-02"))
}
