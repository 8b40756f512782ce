package companies

import "strings"

// LookupBySlug returns the company with the given slug, if any.
func LookupBySlug(slug string) (Company, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, c := range reference {
		if c.Slug == slug {
			return c, true
		}
	}
	return Company{}, false
}

// FindByName matches a detected provider name against the reference set.
// Matching is case-insensitive: exact name or slug first, then containment
// in either direction. When several containment candidates match, the one
// with the longest reference name wins so "OTR Solutions" beats "OTR".
func FindByName(name string) (Company, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return Company{}, false
	}

	for _, c := range reference {
		if strings.ToLower(c.Name) == normalized || c.Slug == normalized {
			return c, true
		}
	}

	var best Company
	found := false
	for _, c := range reference {
		lower := strings.ToLower(c.Name)
		if !strings.Contains(lower, normalized) && !strings.Contains(normalized, lower) {
			continue
		}
		if !found || len(c.Name) > len(best.Name) {
			best = c
			found = true
		}
	}
	return best, found
}
