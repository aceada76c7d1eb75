package models

// FilterState captures the user-controlled search/filter/pagination
// parameters driving a list fetch. Changing any filter field resets the
// page to 1; only explicit page navigation keeps the other fields.
type FilterState struct {
	Search      string
	Status      string
	ServiceType string
	Page        int
	PageSize    int
}

// DefaultPageSize matches the backend's list endpoints.
const DefaultPageSize = 20

// NewFilterState returns the initial state for a freshly mounted page.
func NewFilterState() FilterState {
	return FilterState{Status: StatusAll, Page: 1, PageSize: DefaultPageSize}
}

// WithSearch returns a copy with the search term replaced and the page reset.
func (f FilterState) WithSearch(term string) FilterState {
	f.Search = term
	f.Page = 1
	return f
}

// WithStatus returns a copy with the status filter replaced and the page reset.
func (f FilterState) WithStatus(status string) FilterState {
	f.Status = status
	f.Page = 1
	return f
}

// WithServiceType returns a copy with the category filter replaced and the
// page reset.
func (f FilterState) WithServiceType(serviceType string) FilterState {
	f.ServiceType = serviceType
	f.Page = 1
	return f
}

// WithPage returns a copy on the requested page, leaving filters untouched.
func (f FilterState) WithPage(page int) FilterState {
	if page < 1 {
		page = 1
	}
	f.Page = page
	return f
}
