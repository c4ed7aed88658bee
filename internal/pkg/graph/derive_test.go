package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRatios(t *testing.T) {
	r := DeriveRatios(1000, 2500, 150, 10)

	assert.Equal(t, 15.0, r.EngagementRate)
	assert.Equal(t, 2.5, r.ReachRatio)
	assert.Equal(t, 15.0, r.EngagementPerItem)
}

func TestDeriveRatiosRounding(t *testing.T) {
	r := DeriveRatios(3, 1, 1, 3)

	// 1/3*100 = 33.333... -> 33.33
	assert.Equal(t, 33.33, r.EngagementRate)
	assert.Equal(t, 0.33, r.ReachRatio)
	assert.Equal(t, 0.33, r.EngagementPerItem)
}

// 新账号 followers 为 0 时不允许 NaN 或报错，全部归零
func TestDeriveRatiosZeroFollowers(t *testing.T) {
	r := DeriveRatios(0, 500, 100, 5)

	assert.Equal(t, 0.0, r.EngagementRate)
	assert.Equal(t, 0.0, r.ReachRatio)
	assert.Equal(t, 20.0, r.EngagementPerItem)
}

func TestDeriveRatiosZeroItems(t *testing.T) {
	r := DeriveRatios(100, 0, 0, 0)

	assert.Equal(t, Ratios{}, r)
}
