package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

func TestExportCSV(t *testing.T) {
	leads := []model.Lead{
		{
			ID:          "l1",
			Name:        "Alice Freeman",
			Company:     "TechNova Solutions",
			Email:       "alice.f@technova.com",
			Phone:       "+1 (555) 123-4567",
			Status:      model.StatusEngaged,
			Source:      model.SourceWebsite,
			Tags:        []string{"Enterprise", "SaaS"},
			LastContact: time.Date(2023, 10, 25, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:          "l2",
			Name:        "Bob Smith",
			Company:     "Global Logistics",
			Email:       "bsmith@glogistics.net",
			Status:      model.StatusProposal,
			Source:      model.SourceLinkedIn,
			LastContact: time.Date(2023, 10, 26, 9, 15, 0, 0, time.UTC),
		},
	}

	out, err := ExportCSV(leads)
	require.NoError(t, err)

	lines := strings.Split(string(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Company,Email,Phone,Status,Source,Tags,Last Contact", lines[0])
	assert.Equal(t,
		`"Alice Freeman","TechNova Solutions","alice.f@technova.com","+1 (555) 123-4567","Engaged","Website","Enterprise;SaaS","2023-10-25T14:30:00Z"`,
		lines[1])
	assert.Equal(t,
		`"Bob Smith","Global Logistics","bsmith@glogistics.net","","Proposal","LinkedIn","","2023-10-26T09:15:00Z"`,
		lines[2])
}

func TestExportCSVEmpty(t *testing.T) {
	_, err := ExportCSV(nil)
	assert.ErrorIs(t, err, common.ErrEmptyExport)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2023, 10, 27, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "leads_export_2023-10-27.csv", ExportFilename(now))
}

func TestImportCSV(t *testing.T) {
	now := time.Now()
	content := strings.Join([]string{
		`Name,Company,Email,Phone,Status,Source,Tags`,
		`"Alice Freeman","TechNova, Inc","alice@technova.com","","Engaged","Website","Enterprise;SaaS"`,
		``,
		`"Missing Email","Acme","","","New Lead","Website",""`,
		`"Short Row","Acme"`,
		`"Bogus Enums","Acme","bogus@acme.test","","Not A Status","Carrier Pigeon",""`,
	}, "\n")

	leads, err := ImportLeads("leads.csv", []byte(content), now)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	alice := leads[0]
	assert.NotEmpty(t, alice.ID)
	assert.Equal(t, "Alice Freeman", alice.Name)
	assert.Equal(t, "TechNova, Inc", alice.Company, "quoted commas stay inside the field")
	assert.Equal(t, model.StatusEngaged, alice.Status)
	assert.Equal(t, []string{"Enterprise", "SaaS"}, alice.Tags)
	assert.Equal(t, "Unassigned", alice.Owner)
	assert.Equal(t, now, alice.LastContact)

	bogus := leads[1]
	assert.Equal(t, model.StatusNew, bogus.Status, "unknown status falls back")
	assert.Equal(t, model.SourceWebsite, bogus.Source, "unknown source falls back")
}

func TestImportCSVHeadersCaseInsensitive(t *testing.T) {
	content := "NAME,EMAIL\n\"Carol\",\"carol@stark.com\""

	leads, err := ImportLeads("leads.csv", []byte(content), time.Now())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Carol", leads[0].Name)
}

func TestImportJSON(t *testing.T) {
	now := time.Now()
	content := `[
		{"name": "Carol Danvers", "company": "Stark Industries", "email": "cdanvers@stark.com"},
		{"id": "keep-me", "name": "David Kim", "email": "dkim@nextgen.ai", "tags": ["AI"], "status": "Qualification"}
	]`

	leads, err := ImportLeads("leads.json", []byte(content), now)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.NotEmpty(t, leads[0].ID, "missing id is generated")
	assert.Equal(t, []string{}, leads[0].Tags)
	assert.Equal(t, []model.Activity{}, leads[0].Activities)
	assert.Equal(t, now, leads[0].LastContact)

	assert.Equal(t, "keep-me", leads[1].ID, "existing id is kept")
	assert.Equal(t, []string{"AI"}, leads[1].Tags)
	assert.Equal(t, model.StatusQualification, leads[1].Status)
}

func TestImportJSONKeepsSparseRecords(t *testing.T) {
	now := time.Now()

	leads, err := ImportLeads("leads.json", []byte(`[{"name": "X"}]`), now)
	require.NoError(t, err)
	require.Len(t, leads, 1)

	got := leads[0]
	assert.Equal(t, "X", got.Name)
	assert.Empty(t, got.Email, "JSON records are kept without an email")
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, now, got.LastContact)
}

func TestImportStrictnessAsymmetry(t *testing.T) {
	// The same email-less record is dropped by the CSV mapping but kept
	// by the JSON one.
	csv := "Name,Email\n\"X\",\"\""
	_, err := ImportLeads("leads.csv", []byte(csv), time.Now())
	assert.ErrorIs(t, err, common.ErrNoValidLeads)

	leads, err := ImportLeads("leads.json", []byte(`[{"name": "X"}]`), time.Now())
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestImportJSONNotAnArray(t *testing.T) {
	_, err := ImportLeads("leads.json", []byte(`{"name": "not an array"}`), time.Now())
	assert.ErrorIs(t, err, common.ErrNoValidLeads)
}

func TestImportMalformedJSON(t *testing.T) {
	_, err := ImportLeads("leads.json", []byte(`[{"name": `), time.Now())
	assert.ErrorIs(t, err, common.ErrParse)
}

func TestImportUnsupportedExtension(t *testing.T) {
	_, err := ImportLeads("leads.xlsx", []byte("whatever"), time.Now())
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestImportNoValidLeads(t *testing.T) {
	content := "Name,Email\n\"\",\"no-name@acme.test\""

	_, err := ImportLeads("leads.csv", []byte(content), time.Now())
	assert.ErrorIs(t, err, common.ErrNoValidLeads)
}

func TestExportImportRoundTrip(t *testing.T) {
	now := time.Now()
	original := []model.Lead{
		{
			ID:          "l1",
			Name:        "Eva Green",
			Company:     "Green Earth",
			Email:       "eva@greenearth.org",
			Status:      model.StatusWon,
			Source:      model.SourceWebsite,
			Tags:        []string{"Non-Profit"},
			LastContact: time.Date(2023, 10, 22, 10, 0, 0, 0, time.UTC),
		},
	}

	out, err := ExportCSV(original)
	require.NoError(t, err)

	leads, err := ImportLeads("roundtrip.csv", out, now)
	require.NoError(t, err)
	require.Len(t, leads, 1)

	got := leads[0]
	assert.Equal(t, "Eva Green", got.Name)
	assert.Equal(t, model.StatusWon, got.Status)
	assert.Equal(t, model.SourceWebsite, got.Source)
	assert.Equal(t, []string{"Non-Profit"}, got.Tags)
	assert.NotEqual(t, "l1", got.ID, "import always assigns a fresh id")
}
