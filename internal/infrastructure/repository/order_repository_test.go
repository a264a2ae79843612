package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderSortColumn_AllowsKnownColumns(t *testing.T) {
	for col := range orderSortColumns {
		assert.Equal(t, col, orderSortColumn(col))
	}
}

func TestOrderSortColumn_RejectsArbitraryInput(t *testing.T) {
	cases := []string{
		"",
		"party_id; DROP TABLE orders",
		"created_at DESC, (SELECT 1)",
		"notes",
		"CREATED_AT",
	}
	for _, in := range cases {
		assert.Equal(t, "created_at", orderSortColumn(in), "input %q", in)
	}
}
