package keyset

import (
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsWithIDs(ids ...int64) []Row {
	return lo.Map(ids, func(id int64, _ int) Row {
		return Row{"id": id, "title": fmt.Sprintf("post %d", id)}
	})
}

func Test_Reduce_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		params      Params[string]
		rows        []Row
		wantItems   []Row
		wantCursors Cursors
	}{
		{
			name:        "first page with continuation",
			params:      Params[string]{Field: "id", SortDirection: DirectionASC, Limit: 2},
			rows:        rowsWithIDs(1, 2, 3),
			wantItems:   rowsWithIDs(1, 2),
			wantCursors: Cursors{End: IntCursor(2), Next: IntCursor(3)},
		},
		{
			name:        "exact page is the last one",
			params:      Params[string]{Field: "id", SortDirection: DirectionASC, Limit: 2},
			rows:        rowsWithIDs(1, 2),
			wantItems:   rowsWithIDs(1, 2),
			wantCursors: Cursors{End: IntCursor(2)},
		},
		{
			name:        "short page is the last one",
			params:      Params[string]{Field: "id", SortDirection: DirectionASC, Cursor: IntCursor(7), Limit: 5},
			rows:        rowsWithIDs(7, 8),
			wantItems:   rowsWithIDs(7, 8),
			wantCursors: Cursors{Start: IntCursor(7), End: IntCursor(8)},
		},
		{
			name:        "empty page collapses end to start",
			params:      Params[string]{Field: "id", SortDirection: DirectionASC, Cursor: IntCursor(99), Limit: 2},
			rows:        nil,
			wantItems:   []Row{},
			wantCursors: Cursors{Start: IntCursor(99), End: IntCursor(99)},
		},
		{
			name:        "empty first page has no cursors",
			params:      Params[string]{Field: "id", SortDirection: DirectionASC, Limit: 2},
			rows:        []Row{},
			wantItems:   []Row{},
			wantCursors: Cursors{},
		},
		{
			name:        "descending with cursor",
			params:      Params[string]{Field: "id", SortDirection: DirectionDESC, Cursor: IntCursor(6), Limit: 2},
			rows:        rowsWithIDs(6, 5, 4),
			wantItems:   rowsWithIDs(6, 5),
			wantCursors: Cursors{Start: IntCursor(6), End: IntCursor(5), Next: IntCursor(4)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ReduceRows(Plan(tt.params), tt.rows)
			require.NoError(t, err)
			require.Equal(t, tt.wantItems, page.Items)
			require.Equal(t, tt.wantCursors, page.Cursors)
			require.Equal(t, !tt.wantCursors.Next.IsEmpty(), page.Cursors.HasNext())
		})
	}
}

func Test_Reduce_InconsistentRowCount(t *testing.T) {
	p := Plan(Params[string]{Field: "id", SortDirection: DirectionASC, Limit: 2})

	page, err := ReduceRows(p, rowsWithIDs(1, 2, 3, 4, 5))
	require.ErrorIs(t, err, ErrInconsistentPage)
	require.Nil(t, page.Items)

	_, err = ReduceRows[string](nil, rowsWithIDs(1))
	require.ErrorIs(t, err, ErrInconsistentPage)
}

func Test_Reduce_Properties(t *testing.T) {
	for limit := 1; limit <= 4; limit++ {
		p := Plan(Params[string]{Field: "id", SortDirection: DirectionASC, Limit: limit})

		for n := 0; n <= p.QueriedLimit(); n++ {
			ids := lo.Map(lo.Range(n), func(i int, _ int) int64 { return int64(i + 1) })
			rows := rowsWithIDs(ids...)

			page, err := ReduceRows(p, rows)
			require.NoError(t, err, "limit=%d rows=%d", limit, n)

			// Size bound.
			assert.LessOrEqual(t, len(page.Items), limit)
			// Next exists iff the executor returned QueriedLimit rows.
			assert.Equal(t, n == p.QueriedLimit(), page.Cursors.HasNext(), "limit=%d rows=%d", limit, n)
			// Start is always the supplied cursor.
			assert.True(t, page.Cursors.Start.IsEmpty())

			if n == p.QueriedLimit() {
				dropped := rows[limit]
				assert.NotContains(t, page.Items, dropped)
				assert.Equal(t, IntCursor(dropped["id"].(int64)), page.Cursors.Next)
			}
			if n > 0 {
				last := page.Items[len(page.Items)-1]
				assert.Equal(t, IntCursor(last["id"].(int64)), page.Cursors.End)
			}
		}
	}
}

func Test_Reduce_ItemsDoNotAliasDroppedRow(t *testing.T) {
	p := Plan(Params[string]{Field: "id", SortDirection: DirectionASC, Limit: 2})
	rows := rowsWithIDs(1, 2, 3)

	page, err := ReduceRows(p, rows)
	require.NoError(t, err)

	items := append(page.Items, Row{"id": int64(100)})
	require.Len(t, items, 3)
	require.Equal(t, int64(3), rows[2]["id"])
}

func Test_Reduce_Getters(t *testing.T) {
	type post struct {
		ID        int64
		CreatedAt time.Time
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	posts := []post{
		{1, base},
		{2, base.Add(time.Hour)},
		{3, base.Add(2 * time.Hour)},
	}

	getters := Getters[post, string]{
		"id":         func(p post) any { return p.ID },
		"created_at": func(p post) any { return p.CreatedAt },
	}

	p := Plan(Params[string]{Field: "created_at", SortDirection: DirectionASC, Limit: 2})
	page, err := Reduce(p, posts, getters.Extractor())
	require.NoError(t, err)
	require.Equal(t, posts[:2], page.Items)
	require.Equal(t, TimeCursor(base.Add(time.Hour)), page.Cursors.End)
	require.Equal(t, TimeCursor(base.Add(2*time.Hour)), page.Cursors.Next)

	missing := Plan(Params[string]{Field: "title", SortDirection: DirectionASC, Limit: 2})
	_, err = Reduce(missing, posts, getters.Extractor())
	require.ErrorIs(t, err, ErrCursorField)
}

func Test_Reduce_ExtractionErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
	}{
		{"missing column", []Row{{"title": "a"}}},
		{"NULL value", []Row{{"id": nil}}},
		{"unsupported value", []Row{{"id": []int{1}}}},
		{"absent cursor value", []Row{{"id": Cursor{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Plan(Params[string]{Field: "id", SortDirection: DirectionASC, Limit: 2})
			_, err := ReduceRows(p, tt.rows)
			require.ErrorIs(t, err, ErrCursorField)
			require.NotErrorIs(t, err, ErrInconsistentPage)
		})
	}
}
