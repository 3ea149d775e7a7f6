package badge

import "testing"

func TestCatalog(t *testing.T) {
	badges := Catalog()
	if len(badges) != 10 {
		t.Fatalf("expected 10 badges, got %d", len(badges))
	}

	seen := make(map[ID]bool)
	for _, b := range badges {
		if b.Name == "" || b.Description == "" {
			t.Errorf("badge %s missing name or description", b.ID)
		}
		if seen[b.ID] {
			t.Errorf("duplicate badge id %s", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestLookup(t *testing.T) {
	b, ok := Lookup(CodeMaster)
	if !ok {
		t.Fatal("expected code-master to exist")
	}
	if b.Name != "Code Master" {
		t.Errorf("expected Code Master, got %s", b.Name)
	}

	if _, ok := Lookup("no-such-badge"); ok {
		t.Error("unknown badge should not resolve")
	}
}
