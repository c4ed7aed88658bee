package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	items := []RawItem{
		{Likes: 10, Comments: 2, Shares: 1, Reach: 100},
		{Likes: 5, Comments: 3, Reach: 50},
		{},
	}

	totals := Aggregate(items)

	assert.Equal(t, 15, totals.Likes)
	assert.Equal(t, 5, totals.Comments)
	assert.Equal(t, 1, totals.Shares)
	assert.Equal(t, 150, totals.Reach)
	assert.Equal(t, 21, totals.Engagement)
	assert.Equal(t, 3, totals.ItemCount)
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)

	assert.Equal(t, Totals{}, totals)
}
