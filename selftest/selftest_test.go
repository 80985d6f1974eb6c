package selftest

import "testing"

func TestRunReturnsEveryCheck(t *testing.T) {
	results := Run()
	if len(results) == 0 {
		t.Fatalf("Run returned no results")
	}
	seen := map[string]bool{}
	for _, r := range results {
		if seen[r.Name] {
			t.Fatalf("duplicate check name %q", r.Name)
		}
		seen[r.Name] = true
	}
}
