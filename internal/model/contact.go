package model

import "time"

type Contact struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactPage struct {
	Contacts    []Contact `json:"contacts"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// listSortColumns whitelists sortable fields; anything else falls back to
// surname so user input never reaches the ORDER BY clause directly.
var listSortColumns = map[string]string{
	"firstname":  "firstname",
	"surname":    "surname",
	"email":      "email",
	"phone":      "phone",
	"created_at": "created_at",
}

type ListParams struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if _, ok := listSortColumns[p.Sort]; !ok {
		p.Sort = "surname"
	}
	if p.Order != "desc" {
		p.Order = "asc"
	}
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SortColumn returns the whitelisted column name for the requested sort field.
func (p ListParams) SortColumn() string {
	if col, ok := listSortColumns[p.Sort]; ok {
		return col
	}
	return "surname"
}
