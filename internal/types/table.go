package types

// TablePage is one page of rows from a database table, as reported by
// GET /api/database/<connection>/table/<name>.
type TablePage struct {
	Table   string           `json:"table"`
	Columns []string         `json:"columns"`
	Data    []map[string]any `json:"data"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

func (p *TablePage) PageCount() int {
	if p == nil || p.PerPage <= 0 {
		return 0
	}
	pages := p.Total / p.PerPage
	if p.Total%p.PerPage != 0 {
		pages++
	}
	return pages
}
