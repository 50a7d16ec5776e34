package paging

import (
	"net/url"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"empty", "", Params{Offset: 0, Limit: 10}},
		{"both set", "offset=20&limit=5", Params{Offset: 20, Limit: 5}},
		{"non-numeric offset", "offset=abc&limit=5", Params{Offset: 0, Limit: 5}},
		{"non-numeric limit", "offset=20&limit=xyz", Params{Offset: 20, Limit: 10}},
		{"negative values", "offset=-1&limit=-5", Params{Offset: 0, Limit: 10}},
		{"zero limit falls back", "limit=0", Params{Offset: 0, Limit: 10}},
		{"zero offset is valid", "offset=0", Params{Offset: 0, Limit: 10}},
		{"float is non-numeric", "offset=1.5", Params{Offset: 0, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}

			got := ParseParams(values)
			if got != tt.want {
				t.Fatalf("ParseParams(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestNewLinks_FirstFullPage(t *testing.T) {
	links := NewLinks("/products", Params{Offset: 0, Limit: 10}, 10)

	if links.Self.Href != "/products?offset=0&limit=10" {
		t.Fatalf("self = %q", links.Self.Href)
	}
	if links.Prev != nil {
		t.Fatalf("prev must be absent on the first page")
	}
	if links.Next == nil || links.Next.Href != "/products?offset=10&limit=10" {
		t.Fatalf("next = %+v, want offset=10", links.Next)
	}
}

func TestNewLinks_ShortPageHasNoNext(t *testing.T) {
	links := NewLinks("/orders", Params{Offset: 10, Limit: 10}, 3)

	if links.Next != nil {
		t.Fatalf("short page must not have a next link")
	}
	if links.Prev == nil || links.Prev.Href != "/orders?offset=0&limit=10" {
		t.Fatalf("prev = %+v, want offset=0", links.Prev)
	}
}

func TestNewLinks_PrevClampedAtZero(t *testing.T) {
	links := NewLinks("/orders", Params{Offset: 5, Limit: 10}, 10)

	if links.Prev == nil || links.Prev.Href != "/orders?offset=0&limit=10" {
		t.Fatalf("prev = %+v, want clamped offset=0", links.Prev)
	}
}

func TestNewLinks_EmptyPage(t *testing.T) {
	links := NewLinks("/categories", Params{Offset: 0, Limit: 10}, 0)

	if links.Prev != nil || links.Next != nil {
		t.Fatalf("empty first page must only carry self, got %+v", links)
	}
}
