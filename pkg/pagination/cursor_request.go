package pagination

const (
	// PageDefaultSize applies when a request leaves size unset.
	PageDefaultSize = 20
	PageMaxSize     = 100
)

// CursorRequest is the query of a keyset-paginated listing. Cursor is
// opaque to clients and empty for the first page.
type CursorRequest struct {
	Cursor string `json:"cursor,omitempty" query:"cursor"`
	Size   int    `json:"size" query:"size"`
}

// Normalize clamps Size into [1, PageMaxSize].
func (r *CursorRequest) Normalize() {
	switch {
	case r.Size <= 0:
		r.Size = PageDefaultSize
	case r.Size > PageMaxSize:
		r.Size = PageMaxSize
	}
}
