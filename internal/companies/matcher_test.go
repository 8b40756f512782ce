package companies

import "testing"

func TestLookupBySlug(t *testing.T) {
	c, ok := LookupBySlug("bobtail")
	if !ok {
		t.Fatalf("expected bobtail to be found")
	}
	if c.Name != "Bobtail" {
		t.Fatalf("expected name Bobtail, got %q", c.Name)
	}

	if _, ok := LookupBySlug("  TAFS "); !ok {
		t.Fatalf("expected slug lookup to trim and lowercase")
	}

	if _, ok := LookupBySlug("no-such-company"); ok {
		t.Fatalf("expected unknown slug to miss")
	}
}

func TestFindByNameExact(t *testing.T) {
	c, ok := FindByName("apex capital")
	if !ok {
		t.Fatalf("expected exact name match")
	}
	if c.Slug != "apex-capital" {
		t.Fatalf("expected apex-capital, got %q", c.Slug)
	}

	c, ok = FindByName("rts-financial")
	if !ok || c.Slug != "rts-financial" {
		t.Fatalf("expected slug to match as a name, got ok=%v slug=%q", ok, c.Slug)
	}
}

func TestFindByNameContainment(t *testing.T) {
	c, ok := FindByName("OTR")
	if !ok {
		t.Fatalf("expected partial name to match")
	}
	if c.Slug != "otr-solutions" {
		t.Fatalf("expected otr-solutions, got %q", c.Slug)
	}

	c, ok = FindByName("Triumph Business Capital LLC")
	if !ok {
		t.Fatalf("expected detected name containing reference name to match")
	}
	if c.Slug != "triumph-business-capital" {
		t.Fatalf("expected triumph-business-capital, got %q", c.Slug)
	}
}

func TestFindByNameLongestWins(t *testing.T) {
	// "England" is contained in exactly one name here, but a generic
	// fragment like "capital" hits several. The longest reference name
	// must win deterministically.
	c, ok := FindByName("capital")
	if !ok {
		t.Fatalf("expected a containment match for capital")
	}
	if c.Slug != "triumph-business-capital" {
		t.Fatalf("expected longest-name winner triumph-business-capital, got %q", c.Slug)
	}
}

func TestFindByNameEmpty(t *testing.T) {
	if _, ok := FindByName("   "); ok {
		t.Fatalf("expected blank name to miss")
	}
	if _, ok := FindByName("Unknown Factoring Co"); ok {
		t.Fatalf("expected unrelated name to miss")
	}
}
