package extract

import "testing"

func TestDeduper_AcceptFirstSight(t *testing.T) {
	d := NewDeduper()
	p := Person{Website: "http://site.com", FullName: "John Smith"}
	if !d.Accept(p) {
		t.Fatal("first sighting should be accepted")
	}
	if d.Accept(p) {
		t.Fatal("second sighting should be rejected")
	}
	if d.Len() != 1 {
		t.Errorf("expected 1 key, got %d", d.Len())
	}
}

func TestDeduper_KeyIsCaseAndWhitespaceInsensitive(t *testing.T) {
	d := NewDeduper()
	if !d.Accept(Person{Website: "http://site.com", FullName: "John Smith"}) {
		t.Fatal("first sighting should be accepted")
	}
	if d.Accept(Person{Website: "http://site.com", FullName: "  john smith "}) {
		t.Fatal("normalized repeat should be rejected")
	}
}

func TestDeduper_DifferentWebsitesAreDistinct(t *testing.T) {
	d := NewDeduper()
	if !d.Accept(Person{Website: "http://a.com", FullName: "John Smith"}) {
		t.Fatal("should accept on a.com")
	}
	if !d.Accept(Person{Website: "http://b.com", FullName: "John Smith"}) {
		t.Fatal("same name on different site should be accepted")
	}
}

func TestDeduper_EmptyNames(t *testing.T) {
	d := NewDeduper()
	if !d.Accept(Person{Website: "http://a.com"}) {
		t.Fatal("first empty-name record should be accepted")
	}
	// Empty names share a key per site; dedup on them is not meaningful
	// but must stay consistent.
	if d.Accept(Person{Website: "http://a.com"}) {
		t.Fatal("second empty-name record on same site should be rejected")
	}
}
