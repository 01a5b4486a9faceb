package listutil

import (
	"net/url"
	"strconv"
)

// PageSize is the fixed number of events per page, matching the backend's
// default limit.
const PageSize = 10

// OffsetParams carries offset pagination parameters parsed from a request.
type OffsetParams struct {
	Term   string // free-text search term
	Limit  int    // rows per page
	Offset int    // rows to skip, always >= 0
}

// ParseOffsetParams extracts term and offset from URL query values.
// PRE: none
// POST: returns valid OffsetParams with Limit set and Offset clamped at 0
func ParseOffsetParams(q url.Values) OffsetParams {
	offset, _ := strconv.Atoi(q.Get("offset"))
	return OffsetParams{
		Term:   q.Get("q"),
		Limit:  PageSize,
		Offset: ClampOffset(offset),
	}
}

// ClampOffset clamps an offset at the lower bound. There is no upper clamp:
// paging past the end yields an empty page, which is a valid result.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// NextOffset advances one page.
func NextOffset(offset int) int {
	return offset + PageSize
}

// PrevOffset goes back one page, never below 0.
func PrevOffset(offset int) int {
	return ClampOffset(offset - PageSize)
}

// PageNumber returns the 1-indexed page for display.
func PageNumber(offset int) int {
	return offset/PageSize + 1
}

// HasPrev reports whether a previous page exists.
func HasPrev(offset int) bool {
	return offset > 0
}

// LikelyLastPage reports whether the fetched page looks like the final one.
// The backend sends no total count, so a short page is the only signal; the
// next button is merely disabled on it, never blocked server-side.
func LikelyLastPage(got int) bool {
	return got < PageSize
}
