package entity

// IndexUpdateRequest is the update-content body. An empty ProductFolder
// serialises to {} and asks the backend to rebuild every folder.
type IndexUpdateRequest struct {
	ProductFolder string `json:"product_folder,omitempty"`
}

// Scoped reports whether the request targets a single folder.
func (r IndexUpdateRequest) Scoped() bool {
	return r.ProductFolder != ""
}
