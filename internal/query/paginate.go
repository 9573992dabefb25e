package query

// Pagination describes one page of a result set.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	TotalPages   int  `json:"totalPages"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
}

// Paginate slices items into the requested page. Page and limit below 1 are
// clamped to 1; the API boundary rejects those before getting here, this is
// the internal safety net. An out-of-range page yields an empty slice, not an
// error.
func Paginate(items []any, page, limit int) ([]any, *Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit

	offset := (page - 1) * limit
	end := offset + limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	return items[offset:end], &Pagination{
		CurrentPage:  page,
		TotalItems:   total,
		ItemsPerPage: limit,
		TotalPages:   totalPages,
		HasNext:      (page-1)*limit+limit < total,
		HasPrev:      page > 1,
	}
}
