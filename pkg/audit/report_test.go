package audit

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReportAdd(t *testing.T) {
	r := NewReport()
	r.Add("acme", NewTestRepo("acme", "a"))
	r.Add("widgets", NewTestRepo("widgets", "z"))
	r.Add("acme", NewTestRepo("acme", "c"))

	want := map[string][]string{
		"acme":    {"acme/a", "acme/c"},
		"widgets": {"widgets/z"},
	}
	if diff := cmp.Diff(want, r.Entries()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	if diff := cmp.Diff([]string{"acme", "widgets"}, r.Orgs()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	if r.Len() != 3 {
		t.Errorf("want 3 repos, got %d", r.Len())
	}
}

func TestReportEntriesIsCopy(t *testing.T) {
	r := NewReport()
	r.Add("acme", NewTestRepo("acme", "a"))

	entries := r.Entries()
	entries["acme"][0] = "changed"
	entries["other"] = []string{"other/x"}

	want := map[string][]string{"acme": {"acme/a"}}
	if diff := cmp.Diff(want, r.Entries()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestReportConcurrentOrgs(t *testing.T) {
	r := NewReport()
	orgs := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	for _, org := range orgs {
		wg.Add(1)
		go func(org string) {
			defer wg.Done()
			for _, name := range []string{"1", "2", "3"} {
				r.Add(org, NewTestRepo(org, name))
			}
		}(org)
	}
	wg.Wait()

	// Insertion order within each org is kept regardless of interleaving
	for _, org := range orgs {
		want := []string{org + "/1", org + "/2", org + "/3"}
		if diff := cmp.Diff(want, r.Entries()[org]); diff != "" {
			t.Errorf("org %s (-want +got)\n%s", org, diff)
		}
	}
}

func TestReportEmpty(t *testing.T) {
	r := NewReport()
	if diff := cmp.Diff(map[string][]string{}, r.Entries()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}
