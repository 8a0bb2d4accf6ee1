package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithQuerySortBy(t *testing.T) {
	allowed := map[string]string{
		"name":       "p.name",
		"created_at": "p.created_at",
	}

	assert.Equal(t, SortBy{Column: "p.name", Desc: true}, WithQuerySortBy(" NAME ", "DESC", allowed, "created_at"))
	assert.Equal(t, SortBy{Column: "p.created_at"}, WithQuerySortBy("price; DROP TABLE", "asc", allowed, "created_at"))
	assert.Equal(t, SortBy{Column: "p.created_at"}, WithQuerySortBy("", "", allowed, "created_at"))
}
