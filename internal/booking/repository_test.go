package booking

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFiltered(t *testing.T, f ListFilter) string {
	t.Helper()
	sql, _, err := applyListFilter(selectBookings(), f).ToSql()
	require.NoError(t, err)
	return sql
}

func TestApplyListFilterPageOffset(t *testing.T) {
	cases := []struct {
		from, size int
		window     string
	}{
		{0, 10, "LIMIT 10 OFFSET 0"},
		{20, 5, "LIMIT 5 OFFSET 20"},
		// from inside a page snaps back to that page's boundary.
		{7, 5, "LIMIT 5 OFFSET 5"},
		{9, 10, "LIMIT 10 OFFSET 0"},
		{11, 10, "LIMIT 10 OFFSET 10"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("from=%d,size=%d", tc.from, tc.size), func(t *testing.T) {
			sql := buildFiltered(t, ListFilter{From: tc.from, Size: tc.size})
			assert.Contains(t, sql, tc.window)
		})
	}
}

func TestApplyListFilterOrdering(t *testing.T) {
	sql := buildFiltered(t, ListFilter{From: 0, Size: 10})
	assert.Contains(t, sql, "ORDER BY b.start_time DESC")
}

func TestApplyListFilterPredicates(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	sql := buildFiltered(t, ListFilter{From: 0, Size: 10})
	assert.NotContains(t, sql, "b.status", "no status predicate without a filter")

	st := StatusWaiting
	sql = buildFiltered(t, ListFilter{Status: &st, StartAfter: &now, From: 0, Size: 10})
	assert.Contains(t, sql, "b.status = ")
	assert.Contains(t, sql, "b.start_time > ")

	sql = buildFiltered(t, ListFilter{EndBefore: &now, From: 0, Size: 10})
	assert.Contains(t, sql, "b.end_time < ")

	sql = buildFiltered(t, ListFilter{CurrentAt: &now, From: 0, Size: 10})
	assert.Contains(t, sql, "b.start_time <= ")
	assert.Contains(t, sql, "b.end_time >= ")
}
