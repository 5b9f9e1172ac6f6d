package application

const (
	DefaultLinesPerPage = 5
	MaxLinesPerPage     = 100
)

// Page is the list envelope returned by paginated endpoints.
type Page[T any] struct {
	Page          int `json:"page"`
	StartIndex    int `json:"startIndex"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Items         []T `json:"items"`
}

// NormalizePaging clamps page to >= 0 and linesPerPage to 1..MaxLinesPerPage,
// using DefaultLinesPerPage when it is unset.
func NormalizePaging(page, linesPerPage int) (int, int) {
	if page < 0 {
		page = 0
	}
	if linesPerPage <= 0 {
		linesPerPage = DefaultLinesPerPage
	}
	if linesPerPage > MaxLinesPerPage {
		linesPerPage = MaxLinesPerPage
	}
	return page, linesPerPage
}

func NewPage[T any](items []T, page, linesPerPage, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if linesPerPage > 0 {
		totalPages = (total + linesPerPage - 1) / linesPerPage
	}
	return Page[T]{
		Page:          page,
		StartIndex:    page * linesPerPage,
		Size:          linesPerPage,
		TotalElements: total,
		TotalPages:    totalPages,
		Items:         items,
	}
}

// MapPage converts the items of p, keeping the paging fields.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{
		Page:          p.Page,
		StartIndex:    p.StartIndex,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Items:         out,
	}
}
