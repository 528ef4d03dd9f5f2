package achievements

import "testing"

func TestCatalogValidates(t *testing.T) {
	if err := Load().Validate(); err != nil {
		t.Fatalf("catalog validation failed: %v", err)
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]Category)
	for _, cat := range Categories {
		for _, d := range Load().ByCategory(cat) {
			if prev, ok := seen[d.ID]; ok {
				t.Errorf("id %q appears in both %s and %s", d.ID, prev, cat)
			}
			seen[d.ID] = cat
		}
	}
	if len(seen) != Load().Total() {
		t.Errorf("got %d unique ids, catalog total is %d", len(seen), Load().Total())
	}
}

func TestCatalogRequiresResolve(t *testing.T) {
	for _, cat := range Categories {
		for _, d := range Load().ByCategory(cat) {
			if d.Requires == "" {
				continue
			}
			req, ok := Load().Get(d.Requires)
			if !ok {
				t.Errorf("%s requires unknown achievement %q", d.ID, d.Requires)
				continue
			}
			if req.ID == d.ID {
				t.Errorf("%s requires itself", d.ID)
			}
		}
	}
}

func TestWinrateLadderChain(t *testing.T) {
	chain := map[string]string{
		"winrate_55": "first_win",
		"winrate_60": "winrate_55",
		"winrate_65": "winrate_60",
	}
	for id, want := range chain {
		d, ok := Load().Get(id)
		if !ok {
			t.Fatalf("missing definition %q", id)
		}
		if d.Requires != want {
			t.Errorf("%s requires %q, want %q", id, d.Requires, want)
		}
	}
}

func TestValidateRejectsBrokenCatalog(t *testing.T) {
	c := &Catalog{
		byID:    map[string]Definition{"a": {ID: "a", Requires: "ghost"}},
		ordered: map[Category][]Definition{CategoryMatches: {{ID: "a", Category: CategoryMatches}}},
	}
	if err := c.Validate(); err == nil {
		t.Error("expected error for unresolvable requires")
	}

	c = &Catalog{
		byID: map[string]Definition{"a": {ID: "a"}},
		ordered: map[Category][]Definition{
			CategoryMatches: {{ID: "a", Category: CategoryMatches}},
			CategoryMMR:     {{ID: "a", Category: CategoryMMR}},
		},
	}
	if err := c.Validate(); err == nil {
		t.Error("expected error for duplicate id")
	}
}
