package extraction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractDates(t *testing.T) {
	content := "Met on 2024/02/01, planned 2024-01-15, again 2024-01-15. 회의 2024년 3월 5일. Bad 2024-13-45."
	assert.Equal(t, []string{"2024-02-01", "2024-01-15", "2024-03-05"}, ExtractDates(content))
	assert.Empty(t, ExtractDates("no dates here"))
}

func TestNormalizeDate(t *testing.T) {
	d, ok := NormalizeDate("2024/01/15")
	assert.True(t, ok)
	assert.Equal(t, "2024-01-15", d)

	d, ok = NormalizeDate(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "2023-12-31", d)

	_, ok = NormalizeDate("")
	assert.False(t, ok)
	_, ok = NormalizeDate(42)
	assert.False(t, ok)
	_, ok = NormalizeDate(nil)
	assert.False(t, ok)
}

func TestExtractTags(t *testing.T) {
	content := "# Heading #nottag\nSome text #golang and #그래프_이론\n#Golang again\nmail@#x and #1bad"
	assert.Equal(t, []string{"golang", "그래프_이론"}, ExtractTags(content))
}

func TestMergeTags(t *testing.T) {
	assert.Equal(t, []string{"Go", "notes", "graph"}, MergeTags([]string{"Go", " notes ", ""}, []string{"go", "#graph", "NOTES"}))
}
