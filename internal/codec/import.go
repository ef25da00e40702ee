package codec

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// importedOwner is assigned to leads that arrive without an owner.
const importedOwner = "Unassigned"

// ImportLeads parses the file content into leads based on the filename
// extension. A malformed file aborts the whole import; a well-formed file
// that yields no usable rows returns common.ErrNoValidLeads.
func ImportLeads(filename string, content []byte, now time.Time) ([]model.Lead, error) {
	var leads []model.Lead
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		leads, err = importJSON(content, now)
	case ".csv":
		leads, err = importCSV(content, now)
	default:
		return nil, fmt.Errorf("%w: %s (use .json or .csv)", common.ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, common.ErrNoValidLeads
	}
	return leads, nil
}

// importJSON accepts an array of lead objects. Missing ids, tags and
// activity lists are filled in; all other fields are taken as-is.
func importJSON(content []byte, now time.Time) ([]model.Lead, error) {
	var leads []model.Lead
	if err := json.Unmarshal(content, &leads); err != nil {
		if json.Valid(content) {
			// valid JSON that is not a lead array yields nothing
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", common.ErrParse, err)
	}

	for i := range leads {
		if leads[i].ID == "" {
			leads[i].ID = model.NewLeadID()
		}
		if leads[i].Tags == nil {
			leads[i].Tags = []string{}
		}
		if leads[i].Activities == nil {
			leads[i].Activities = []model.Activity{}
		}
		if leads[i].LastContact.IsZero() {
			leads[i].LastContact = now
		}
	}
	return leads, nil
}

// importCSV reads a header row and maps the recognized columns by name,
// case-insensitively. Rows shorter than the header are skipped, as are
// rows missing a name or an email. Unknown statuses and sources fall back
// to their defaults rather than failing the row.
func importCSV(content []byte, now time.Time) ([]model.Lead, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("%w: missing header row", common.ErrParse)
	}

	headers := splitCSVRow(lines[0])
	for i := range headers {
		headers[i] = strings.ToLower(headers[i])
	}

	var leads []model.Lead
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		values := splitCSVRow(lines[i])
		if len(values) < len(headers) {
			continue
		}

		lead := model.Lead{
			ID:          model.NewLeadID(),
			Status:      model.StatusNew,
			Source:      model.SourceWebsite,
			Tags:        []string{},
			Activities:  []model.Activity{},
			LastContact: now,
			Owner:       importedOwner,
		}

		for col, header := range headers {
			val := values[col]
			switch header {
			case "name":
				lead.Name = val
			case "company":
				lead.Company = val
			case "email":
				lead.Email = val
			case "phone":
				lead.Phone = val
			case "status":
				lead.Status, _ = model.ParseStatus(val)
			case "source":
				lead.Source, _ = model.ParseSource(val)
			case "tags":
				lead.Tags = splitTags(val)
			}
		}

		if lead.Name != "" && lead.Email != "" {
			leads = append(leads, lead)
		}
	}
	return leads, nil
}

// splitCSVRow splits a line on commas that sit outside double quotes, then
// strips the surrounding quotes and whitespace from each field.
func splitCSVRow(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, cleanField(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(b.String()))
	return fields
}

func cleanField(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}

func splitTags(val string) []string {
	if val == "" {
		return []string{}
	}
	parts := strings.Split(val, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}
