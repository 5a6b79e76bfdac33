package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsNormalize(t *testing.T) {
	t.Run("zero value gets defaults", func(t *testing.T) {
		p := ListParams{}
		p.Normalize()

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, "surname", p.Sort)
		assert.Equal(t, "asc", p.Order)
	})

	t.Run("negative page and limit reset", func(t *testing.T) {
		p := ListParams{Page: -3, Limit: -1}
		p.Normalize()

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
	})

	t.Run("limit is capped", func(t *testing.T) {
		p := ListParams{Limit: 5000}
		p.Normalize()

		assert.Equal(t, 100, p.Limit)
	})

	t.Run("valid values are preserved", func(t *testing.T) {
		p := ListParams{Page: 3, Limit: 25, Sort: "email", Order: "desc"}
		p.Normalize()

		assert.Equal(t, ListParams{Page: 3, Limit: 25, Sort: "email", Order: "desc"}, p)
	})

	t.Run("unknown sort falls back to surname", func(t *testing.T) {
		for _, sort := range []string{"password_hash", "id; DROP TABLE contacts", "SURNAME", ""} {
			p := ListParams{Sort: sort}
			p.Normalize()

			assert.Equal(t, "surname", p.Sort, "sort %q", sort)
		}
	})

	t.Run("order accepts only asc or desc", func(t *testing.T) {
		p := ListParams{Order: "DESC"}
		p.Normalize()

		assert.Equal(t, "asc", p.Order)
	})
}

func TestListParamsOffset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, ListParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 50, ListParams{Page: 2, Limit: 50}.Offset())
}

func TestListParamsSortColumn(t *testing.T) {
	assert.Equal(t, "created_at", ListParams{Sort: "created_at"}.SortColumn())
	assert.Equal(t, "surname", ListParams{Sort: "deleted"}.SortColumn())
}
