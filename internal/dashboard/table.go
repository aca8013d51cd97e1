package dashboard

import (
	"errors"
	"sort"
	"strings"

	"github.com/BruksfildServices01/barbershop-manager/internal/apiclient"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const PageSize = 20

type TableQuery struct {
	Search string
	// date | client | barber | service
	Sort string
	Desc bool
	Page int
}

type CutsPage struct {
	Rows  []models.Cut
	Page  int
	Pages int
	Total int
	Query TableQuery
}

func (p CutsPage) HasPrev() bool { return p.Page > 1 }

func (p CutsPage) HasNext() bool { return p.Page < p.Pages }

// CutsTable filtra, ordena e pagina os cortes em memória.
func CutsTable(cuts []models.Cut, q TableQuery) CutsPage {
	if q.Sort == "" {
		q.Sort, q.Desc = "date", true
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	rows := make([]models.Cut, 0, len(cuts))
	for _, c := range cuts {
		if term == "" || matches(c, term) {
			rows = append(rows, c)
		}
	}

	key := sortKey(q.Sort)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := key(rows[i]), key(rows[j])
		if a == b {
			return rows[i].ID > rows[j].ID
		}
		if q.Desc {
			return a > b
		}
		return a < b
	})

	total := len(rows)
	pages := (total + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > pages {
		q.Page = pages
	}

	start := (q.Page - 1) * PageSize
	end := min(start+PageSize, total)

	return CutsPage{
		Rows:  rows[start:end],
		Page:  q.Page,
		Pages: pages,
		Total: total,
		Query: q,
	}
}

func matches(c models.Cut, term string) bool {
	fields := []string{c.Service, c.Date, c.Detail, c.MetodoPago}
	if c.Client != nil {
		fields = append(fields, c.Client.Name, c.Client.Alias)
	}
	if c.Barber != nil {
		fields = append(fields, c.Barber.Name)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func sortKey(column string) func(models.Cut) string {
	switch column {
	case "client":
		return func(c models.Cut) string {
			if c.Client == nil {
				return ""
			}
			return strings.ToLower(c.Client.Name)
		}
	case "barber":
		return func(c models.Cut) string {
			if c.Barber == nil {
				return ""
			}
			return strings.ToLower(c.Barber.Name)
		}
	case "service":
		return func(c models.Cut) string { return strings.ToLower(c.Service) }
	default:
		return func(c models.Cut) string { return c.Date }
	}
}

func isExpired(err error) bool {
	return errors.Is(err, apiclient.ErrSessionExpired)
}
