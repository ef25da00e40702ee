// Package filter evaluates leads against multi-field filter criteria.
package filter

import (
	"strings"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// Matches reports whether the lead satisfies every field of the criteria.
// Each field is independently pass-through ("All", or empty search) or a
// concrete value; the result is the logical AND of all five predicates.
// Pure: neither the lead nor the criteria are mutated.
func Matches(lead *model.Lead, criteria model.FilterCriteria, now Clock) bool {
	if now == nil {
		now = time.Now
	}
	return matchesSearch(lead, criteria.Search) &&
		matchesStatus(lead, criteria.Status) &&
		matchesSource(lead, criteria.Source) &&
		matchesTag(lead, criteria.Tag) &&
		InBucket(lead.LastContact, Bucket(criteria.Date), now())
}

func matchesSearch(lead *model.Lead, search string) bool {
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(lead.Name), term) ||
		strings.Contains(strings.ToLower(lead.Company), term)
}

func matchesStatus(lead *model.Lead, status string) bool {
	return status == model.FilterAll || string(lead.Status) == status
}

func matchesSource(lead *model.Lead, source string) bool {
	return source == model.FilterAll || string(lead.Source) == source
}

func matchesTag(lead *model.Lead, tag string) bool {
	return tag == model.FilterAll || lead.HasTag(tag)
}

// Apply filters leads in input order, returning the matching subset.
func Apply(leads []model.Lead, criteria model.FilterCriteria, now Clock) []model.Lead {
	matched := make([]model.Lead, 0, len(leads))
	for i := range leads {
		if Matches(&leads[i], criteria, now) {
			matched = append(matched, leads[i])
		}
	}
	return matched
}
