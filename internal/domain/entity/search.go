package entity

import "strings"

func containsFold(s, sub string) bool {
	return strings.Contains(FoldKey(s), FoldKey(sub))
}

// MatchesSearch razón social sin distinción de mayúsculas o RUC literal.
func (c *Client) MatchesSearch(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	return containsFold(c.RazonSocial, q) || strings.Contains(c.RUC, q)
}

// MatchesSearch cliente o servicio sin distinción de mayúsculas, o RUC literal.
func (q *Quotation) MatchesSearch(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return containsFold(q.Cliente, term) || containsFold(q.Servicio, term) || strings.Contains(q.RUC, term)
}

// MatchesSearch nombre, apellido o rol sin distinción de mayúsculas.
func (u *User) MatchesSearch(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	return containsFold(u.Name, q) || containsFold(u.Lastname, q) || containsFold(u.Role, q)
}
