package utils

import (
	"strconv"
	"strings"

	"gorm.io/gorm"

	"little-lemon/domain"
)

const (
	DefaultPerPage = 4
	MaxPerPage     = 100
	MaxPageNumber  = 1_000_000
)

type Page struct {
	PerPage int
	Number  int
}

// ParsePage falls back to the defaults for missing or malformed values and
// clamps both values so Offset cannot overflow.
func ParsePage(perpage, page string) Page {
	p := Page{PerPage: DefaultPerPage, Number: 1}
	if n, err := strconv.Atoi(perpage); err == nil && n > 0 {
		p.PerPage = min(n, MaxPerPage)
	}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Number = min(n, MaxPageNumber)
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Paginate is a gorm scope. A page past the end yields an empty result.
func Paginate(p Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// ParseOrdering turns "price,-title" into ORDER BY clauses using the
// allowed map from public field names to column names.
func ParseOrdering(raw string, allowed map[string]string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var clauses []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		column, ok := allowed[field]
		if !ok {
			return nil, domain.ErrInvalidOrdering
		}
		clauses = append(clauses, column+" "+dir)
	}
	return clauses, nil
}

// EscapeLike escapes LIKE wildcards so user input only matches literally.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
