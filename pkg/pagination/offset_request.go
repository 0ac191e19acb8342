package pagination

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"page_size" query:"page_size"`
}

// Validate normalizes offset pagination parameters
func (r *OffsetRequest) Validate() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
}

// Offset is the number of items preceding the requested page.
func (r *OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Size
}
