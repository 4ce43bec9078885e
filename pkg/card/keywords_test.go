package card

import "testing"

func TestExtractKeywordsSimple(t *testing.T) {
	set, _ := ExtractKeywords("Flying, trample, first strike")
	for _, k := range []Keyword{Flying, Trample, FirstStrike} {
		if !set.Has(k) {
			t.Fatalf("expected keyword %d present", k)
		}
	}
	if set.Has(Deathtouch) {
		t.Fatal("did not expect Deathtouch present")
	}
}

func TestExtractKeywordsParameterized(t *testing.T) {
	set, args := ExtractKeywords("Ward {2}\nProtection from black\nScry 2")
	if !set.Has(Ward) || args[Ward][0] != "2" {
		t.Fatalf("expected ward 2, got %v", args[Ward])
	}
	if !set.Has(Protection) || args[Protection][0] != "black" {
		t.Fatalf("expected protection from black, got %v", args[Protection])
	}
	if !set.Has(Scry) || args[Scry][0] != "2" {
		t.Fatalf("expected scry 2, got %v", args[Scry])
	}
}

func TestExtractKeywordsLandwalk(t *testing.T) {
	set, _ := ExtractKeywords("Islandwalk")
	if !set.Has(Islandwalk) || !set.Has(Landwalk) {
		t.Fatal("expected both the specific and generic landwalk bits set")
	}
}

func TestKeywordSetUnionAndDiff(t *testing.T) {
	var a, b KeywordSet
	a = a.Set(Flying).Set(Haste)
	b = b.Set(Haste)

	union := a.Union(b)
	if !union.Has(Flying) || !union.Has(Haste) {
		t.Fatal("union missing expected keywords")
	}

	diff := a.Diff(b)
	if diff.Has(Haste) || !diff.Has(Flying) {
		t.Fatal("diff should remove Haste but keep Flying")
	}
}
