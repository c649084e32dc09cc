package intelligence

import (
	"fmt"
	"strings"

	"crm_intel_backend/internal/leads/repository"
)

// listCacheKey builds a stable cache key for a filter set. Fields are
// serialized in a fixed order so logically equal filters always produce
// the same key regardless of how the request was constructed.
func listCacheKey(params repository.ListParams) string {
	var b strings.Builder

	b.WriteString("org=")
	b.WriteString(params.OrganizationID.String())

	b.WriteString("|status=")
	if params.Status != nil {
		b.WriteString(strings.ToLower(*params.Status))
	}

	b.WriteString("|source=")
	if params.Source != nil {
		b.WriteString(strings.ToLower(*params.Source))
	}

	b.WriteString("|search=")
	b.WriteString(strings.ToLower(strings.TrimSpace(params.Search)))

	b.WriteString("|minScore=")
	if params.MinScore != nil {
		b.WriteString(fmt.Sprintf("%d", *params.MinScore))
	}

	return b.String()
}
