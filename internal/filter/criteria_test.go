package filter

import (
	"testing"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func testLead() *model.Lead {
	return &model.Lead{
		ID:          "lead-1",
		Name:        "Alice Freeman",
		Company:     "TechNova Solutions",
		Email:       "alice.f@technova.com",
		Status:      model.StatusEngaged,
		Source:      model.SourceWebsite,
		Tags:        []string{"Enterprise", "SaaS"},
		Owner:       "Sarah Johnson",
		LastContact: time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestMatches(t *testing.T) {
	now := fixedClock(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		criteria model.FilterCriteria
		want     bool
	}{
		{
			name:     "default criteria matches everything",
			criteria: model.DefaultCriteria(),
			want:     true,
		},
		{
			name: "search matches name case-insensitively",
			criteria: model.FilterCriteria{
				Status: "All", Source: "All", Tag: "All", Date: "All",
				Search: "alice",
			},
			want: true,
		},
		{
			name: "search matches company when name does not",
			criteria: model.FilterCriteria{
				Status: "All", Source: "All", Tag: "All", Date: "All",
				Search: "technova",
			},
			want: true,
		},
		{
			name: "search misses both fields",
			criteria: model.FilterCriteria{
				Status: "All", Source: "All", Tag: "All", Date: "All",
				Search: "globex",
			},
			want: false,
		},
		{
			name: "exact status match",
			criteria: model.FilterCriteria{
				Status: "Engaged", Source: "All", Tag: "All", Date: "All",
			},
			want: true,
		},
		{
			name: "status mismatch",
			criteria: model.FilterCriteria{
				Status: "Won", Source: "All", Tag: "All", Date: "All",
			},
			want: false,
		},
		{
			name: "tag containment",
			criteria: model.FilterCriteria{
				Status: "All", Source: "All", Tag: "SaaS", Date: "All",
			},
			want: true,
		},
		{
			name: "tag absent",
			criteria: model.FilterCriteria{
				Status: "All", Source: "All", Tag: "Priority", Date: "All",
			},
			want: false,
		},
		{
			name: "date bucket within week",
			criteria: model.FilterCriteria{
				Status: "All", Source: "All", Tag: "All", Date: "week",
			},
			want: true,
		},
		{
			name: "all fields concrete and matching",
			criteria: model.FilterCriteria{
				Status: "Engaged", Source: "Website", Tag: "Enterprise",
				Date: "week", Search: "tech",
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(testLead(), tt.criteria, now)
			if got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Flipping any single concrete field to a non-matching value must flip the
// overall result; the predicates compose with logical AND.
func TestMatches_ANDComposition(t *testing.T) {
	now := fixedClock(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC))
	matching := model.FilterCriteria{
		Status: "Engaged", Source: "Website", Tag: "SaaS",
		Date: "week", Search: "alice",
	}

	lead := testLead()
	if !Matches(lead, matching, now) {
		t.Fatal("baseline criteria should match")
	}

	flips := []struct {
		name   string
		mutate func(*model.FilterCriteria)
	}{
		{"status", func(c *model.FilterCriteria) { c.Status = "Lost" }},
		{"source", func(c *model.FilterCriteria) { c.Source = "Referral" }},
		{"tag", func(c *model.FilterCriteria) { c.Tag = "Nonexistent" }},
		{"date", func(c *model.FilterCriteria) { c.Date = "today" }},
		{"search", func(c *model.FilterCriteria) { c.Search = "zzz" }},
	}

	for _, f := range flips {
		t.Run(f.name, func(t *testing.T) {
			c := matching
			f.mutate(&c)
			if Matches(lead, c, now) {
				t.Errorf("flipping %s should break the match", f.name)
			}
		})
	}
}

func TestApply_PreservesInputOrder(t *testing.T) {
	now := fixedClock(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC))
	leads := []model.Lead{
		{ID: "a", Name: "Ann", Company: "Acme", Status: model.StatusWon, Source: model.SourceWebsite, LastContact: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Name: "Bob", Company: "Bolt", Status: model.StatusLost, Source: model.SourceWebsite, LastContact: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{ID: "c", Name: "Cyd", Company: "Core", Status: model.StatusWon, Source: model.SourceWebsite, LastContact: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
	}

	criteria := model.DefaultCriteria()
	criteria.Status = "Won"

	got := Apply(leads, criteria, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("expected input order [a c], got [%s %s]", got[0].ID, got[1].ID)
	}
}
