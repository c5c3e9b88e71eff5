package filter

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Page は1始まりのページ指定。
type Page struct {
	Page    int
	PerPage int
}

// NewPage は範囲外の値を既定値に丸める。
func NewPage(page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Page: page, PerPage: perPage}
}

// First は先頭n件。
func First(n int) Page {
	return Page{Page: 1, PerPage: n}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageCount は ceil(total / perPage)。
func (p Page) PageCount(total int64) int {
	if p.PerPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Slice はメモリ上の一覧からページ分を切り出す。
func Slice[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) || start < 0 {
		return []T{}
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Query は一覧取得の条件一式。
type Query struct {
	Filter *Expr
	Sort   Sorts
	Page   Page
}

// Result は一覧APIの返却形。
type Result[T any] struct {
	Data      []T `json:"data"`
	PageCount int `json:"pageCount"`
}

func NewResult[T any](data []T, p Page, total int64) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{Data: data, PageCount: p.PageCount(total)}
}

// Empty は失敗時に返す空の結果。
func Empty[T any]() Result[T] {
	return Result[T]{Data: []T{}, PageCount: 0}
}
