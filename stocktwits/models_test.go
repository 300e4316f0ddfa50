package stocktwits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/im-n1/rug/stocktwits"
)

func TestResultSetBounds(t *testing.T) {
	results := stocktwits.ResultSet{
		Items: []stocktwits.Model{
			&stocktwits.Message{ID: 17},
			&stocktwits.Message{ID: 5},
			&stocktwits.Message{ID: 23},
		},
	}

	maxID, ok := results.MaxID()
	assert.True(t, ok)
	assert.Equal(t, int64(4), maxID, "max id is the smallest contained id minus one")

	sinceID, ok := results.SinceID()
	assert.True(t, ok)
	assert.Equal(t, int64(23), sinceID, "since id is the greatest contained id")
}

func TestResultSetBoundsIgnoreIDLessItems(t *testing.T) {
	results := stocktwits.ResultSet{
		Items: []stocktwits.Model{
			&stocktwits.SentimentModel{Basic: "Bullish"},
			&stocktwits.Message{ID: 9},
		},
	}

	maxID, ok := results.MaxID()
	assert.True(t, ok)
	assert.Equal(t, int64(8), maxID)
}

func TestResultSetBoundsWithoutIDs(t *testing.T) {
	results := stocktwits.ResultSet{
		Items: []stocktwits.Model{
			&stocktwits.SentimentModel{Basic: "Bearish"},
		},
	}

	_, ok := results.MaxID()
	assert.False(t, ok)
	_, ok = results.SinceID()
	assert.False(t, ok)
}

func TestResultSetOverrides(t *testing.T) {
	results := stocktwits.ResultSet{
		Items: []stocktwits.Model{&stocktwits.Message{ID: 100}},
	}
	results.SetMaxID(42)
	results.SetSinceID(43)

	maxID, ok := results.MaxID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), maxID)

	sinceID, ok := results.SinceID()
	assert.True(t, ok)
	assert.Equal(t, int64(43), sinceID)
}
