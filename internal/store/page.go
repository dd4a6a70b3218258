package store

// Pagination bounds applied to every list query.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Page describes a limit/offset window over a filtered result set.
// Values are clamped before use so they can never reach the database as
// anything but bounded non-negative integers.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the window to safe bounds, applying the default limit
// when the caller supplied none.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
