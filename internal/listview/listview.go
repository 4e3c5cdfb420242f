package listview

import (
	"sort"
	"strings"
	"time"

	"usuarios-admin/internal/domain"
)

// Filter restricts the list by the active flag.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterInactive Filter = "inactive"
)

// SortKey selects the field the list is ordered by.
type SortKey string

const (
	SortID       SortKey = "id"
	SortNombre   SortKey = "nombre"
	SortApellido SortKey = "apellido"
	SortFechanac SortKey = "fechanac"
)

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Options parameterize the derived view.
type Options struct {
	Filter Filter
	Search string
	SortBy SortKey
	Order  Order
}

// Apply derives the displayed subset of the collection. A non-empty search
// term matches case-insensitively against nombre or apellido and bypasses
// the status filter entirely; equal sort keys keep their input order.
func Apply(usuarios []domain.Usuario, opts Options) []domain.Usuario {
	if opts.Filter == "" {
		opts.Filter = FilterAll
	}
	if opts.SortBy == "" {
		opts.SortBy = SortID
	}
	if opts.Order == "" {
		opts.Order = OrderDesc
	}

	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]domain.Usuario, 0, len(usuarios))
	for _, u := range usuarios {
		if search != "" {
			if strings.Contains(strings.ToLower(u.Nombre), search) ||
				strings.Contains(strings.ToLower(u.Apellido), search) {
				out = append(out, u)
			}
			continue
		}
		if opts.Filter == FilterActive && !u.ActiveUser {
			continue
		}
		if opts.Filter == FilterInactive && u.ActiveUser {
			continue
		}
		out = append(out, u)
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], opts.SortBy)
		if opts.Order == OrderDesc {
			return c > 0
		}
		return c < 0
	})

	return out
}

func compare(a, b domain.Usuario, key SortKey) int {
	switch key {
	case SortNombre:
		return strings.Compare(strings.ToLower(a.Nombre), strings.ToLower(b.Nombre))
	case SortApellido:
		return strings.Compare(strings.ToLower(a.Apellido), strings.ToLower(b.Apellido))
	case SortFechanac:
		return a.Fechanac.Compare(b.Fechanac)
	default:
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	}
}

// Age is the whole number of years between fechanac and now, decremented
// when now's month/day precedes the birth month/day.
func Age(fechanac, now time.Time) int {
	age := now.Year() - fechanac.Year()
	if now.Month() < fechanac.Month() ||
		(now.Month() == fechanac.Month() && now.Day() < fechanac.Day()) {
		age--
	}
	return age
}
