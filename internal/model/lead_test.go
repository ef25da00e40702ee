package model

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Status
		wantOK bool
	}{
		{"exact match", "Engaged", StatusEngaged, true},
		{"won", "Won", StatusWon, true},
		{"unknown falls back", "Hot Lead", StatusNew, false},
		{"empty falls back", "", StatusNew, false},
		{"case sensitive", "engaged", StatusNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStatus(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseSource(t *testing.T) {
	if got, ok := ParseSource("Cold Call"); got != SourceColdCall || !ok {
		t.Errorf("ParseSource(Cold Call) = (%q, %v)", got, ok)
	}
	if got, ok := ParseSource("Carrier Pigeon"); got != SourceWebsite || ok {
		t.Errorf("ParseSource fallback = (%q, %v), want (Website, false)", got, ok)
	}
}

func TestAddTag(t *testing.T) {
	lead := Lead{Tags: []string{"Enterprise"}}

	if !lead.AddTag("SaaS") {
		t.Error("adding a new tag should report a change")
	}
	if lead.AddTag("SaaS") {
		t.Error("adding an existing tag should be a no-op")
	}
	if len(lead.Tags) != 2 {
		t.Errorf("got %d tags, want 2", len(lead.Tags))
	}
}

func TestLatestActivity(t *testing.T) {
	var lead Lead
	if lead.LatestActivity() != nil {
		t.Error("no activities should yield nil")
	}

	lead.Activities = []Activity{
		{ID: "a2", Content: "newest", Timestamp: time.Now()},
		{ID: "a1", Content: "older", Timestamp: time.Now().Add(-time.Hour)},
	}
	latest := lead.LatestActivity()
	if latest == nil || latest.ID != "a2" {
		t.Errorf("LatestActivity = %+v, want a2", latest)
	}
}
