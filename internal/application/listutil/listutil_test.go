package listutil

import (
	"net/url"
	"testing"
)

func TestParseOffsetParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantTerm   string
		wantOffset int
	}{
		{"empty", "", "", 0},
		{"term only", "q=taller", "taller", 0},
		{"term and offset", "q=go&offset=20", "go", 20},
		{"negative offset clamps", "offset=-10", "", 0},
		{"garbage offset", "offset=abc", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got := ParseOffsetParams(q)
			if got.Term != tt.wantTerm || got.Offset != tt.wantOffset {
				t.Errorf("ParseOffsetParams() = %+v, want term=%q offset=%d", got, tt.wantTerm, tt.wantOffset)
			}
			if got.Limit != PageSize {
				t.Errorf("Limit = %d, want %d", got.Limit, PageSize)
			}
		})
	}
}

func TestOffsetNavigation(t *testing.T) {
	if got := NextOffset(0); got != PageSize {
		t.Errorf("NextOffset(0) = %d, want %d", got, PageSize)
	}
	if got := PrevOffset(0); got != 0 {
		t.Errorf("PrevOffset(0) = %d, want 0", got)
	}
	if got := PrevOffset(PageSize); got != 0 {
		t.Errorf("PrevOffset(%d) = %d, want 0", PageSize, got)
	}
	if got := PrevOffset(25); got != 15 {
		t.Errorf("PrevOffset(25) = %d, want 15", got)
	}
}

func TestPageNumberAndBounds(t *testing.T) {
	tests := []struct {
		offset   int
		wantPage int
		wantPrev bool
	}{
		{0, 1, false},
		{10, 2, true},
		{20, 3, true},
	}
	for _, tt := range tests {
		if got := PageNumber(tt.offset); got != tt.wantPage {
			t.Errorf("PageNumber(%d) = %d, want %d", tt.offset, got, tt.wantPage)
		}
		if got := HasPrev(tt.offset); got != tt.wantPrev {
			t.Errorf("HasPrev(%d) = %v, want %v", tt.offset, got, tt.wantPrev)
		}
	}
}

func TestLikelyLastPage(t *testing.T) {
	if !LikelyLastPage(0) || !LikelyLastPage(PageSize-1) {
		t.Error("short page should look like the last one")
	}
	if LikelyLastPage(PageSize) {
		t.Error("a full page is not a last-page signal")
	}
}
