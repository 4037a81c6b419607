package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanGoTo(t *testing.T) {
	// 12 elements at page size 5 means 3 pages, indices 0 to 2.
	totalPages := 3

	assert.True(t, CanGoTo(0, totalPages))
	assert.True(t, CanGoTo(2, totalPages))
	assert.False(t, CanGoTo(3, totalPages))
	assert.False(t, CanGoTo(5, totalPages))
	assert.False(t, CanGoTo(-1, totalPages))
	assert.False(t, CanGoTo(0, 0))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		totalPages int
		want       []int
	}{
		{"no pages", 0, 0, []int{}},
		{"fewer than five pages", 1, 3, []int{0, 1, 2}},
		{"clamped at start", 0, 10, []int{0, 1, 2, 3, 4}},
		{"centered", 5, 10, []int{3, 4, 5, 6, 7}},
		{"clamped at end", 9, 10, []int{5, 6, 7, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.totalPages))
		})
	}
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AN", Initials("Alice Nguyen"))
	assert.Equal(t, "B", Initials("Bob"))
	assert.Equal(t, "?", Initials(""))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "5m ago", TimeAgo(now, now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", TimeAgo(now, now.Add(-3*time.Hour)))
	assert.Equal(t, "Yesterday", TimeAgo(now, now.AddDate(0, 0, -1)))
	assert.Equal(t, "4d ago", TimeAgo(now, now.AddDate(0, 0, -4)))
	assert.Equal(t, "2w ago", TimeAgo(now, now.AddDate(0, 0, -15)))
	assert.Equal(t, "2mo ago", TimeAgo(now, now.AddDate(0, 0, -65)))
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Good morning", Greeting(9))
	assert.Equal(t, "Good afternoon", Greeting(13))
	assert.Equal(t, "Good evening", Greeting(20))
}
