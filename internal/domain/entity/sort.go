package entity

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// FoldKey clave de comparación sin distinción de mayúsculas (orden de bytes, sin colación regional).
func FoldKey(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// SortClientsByRazonSocial ordena por razón social ascendente; empata por ID para un orden estable.
func SortClientsByRazonSocial(list []*Client) {
	sort.SliceStable(list, func(i, j int) bool {
		ki, kj := FoldKey(list[i].RazonSocial), FoldKey(list[j].RazonSocial)
		if ki != kj {
			return ki < kj
		}
		return list[i].ID < list[j].ID
	})
}

// SortQuotationsNewestFirst ordena por fecha de creación descendente.
func SortQuotationsNewestFirst(list []*Quotation) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}

// SortUsersByName ordena por nombre ascendente sin distinción de mayúsculas.
func SortUsersByName(list []*User) {
	sort.SliceStable(list, func(i, j int) bool {
		ki, kj := FoldKey(list[i].Name), FoldKey(list[j].Name)
		if ki != kj {
			return ki < kj
		}
		return list[i].ID < list[j].ID
	})
}
