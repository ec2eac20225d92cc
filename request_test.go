package keyset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Request_Decode(t *testing.T) {
	mapping := ColumnMapping{
		"id":                "posts.id",
		"creationTimestamp": "posts.creation_timestamp",
	}
	fallback := OrderBy[string]{Column: "posts.id", Direction: DirectionASC}
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     Request
		want    Params[string]
		wantErr bool
	}{
		{
			name: "defaults",
			req:  Request{},
			want: Params[string]{Field: "posts.id", SortDirection: DirectionASC, Limit: DefaultLimit},
		},
		{
			name: "limit clamped to max",
			req:  Request{Limit: MaxLimit + 50},
			want: Params[string]{Field: "posts.id", SortDirection: DirectionASC, Limit: MaxLimit},
		},
		{
			name: "sort alias with direction",
			req:  Request{Limit: 5, Sort: "creationTimestamp desc", Cursor: TimeCursor(ts).String()},
			want: Params[string]{
				Field:         "posts.creation_timestamp",
				SortDirection: DirectionDESC,
				Cursor:        TimeCursor(ts),
				Limit:         5,
			},
		},
		{
			name: "explicit direction overrides",
			req:  Request{Limit: 5, Sort: "creationTimestamp desc", SortDirection: "asc"},
			want: Params[string]{Field: "posts.creation_timestamp", SortDirection: DirectionASC, Limit: 5},
		},
		{
			name: "direction applies to fallback ordering",
			req:  Request{SortDirection: "DESC"},
			want: Params[string]{Field: "posts.id", SortDirection: DirectionDESC, Limit: DefaultLimit},
		},
		{
			name:    "unknown alias",
			req:     Request{Sort: "created"},
			wantErr: true,
		},
		{
			name:    "invalid direction",
			req:     Request{SortDirection: "random"},
			wantErr: true,
		},
		{
			name:    "broken cursor token",
			req:     Request{Cursor: "!!"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Decode(mapping, fallback)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_Request_DecodeMax(t *testing.T) {
	got, err := Request{Limit: 500}.DecodeMax(20, ColumnMapping{"id": "id"}, OrderBy[string]{Column: "id", Direction: DirectionASC})
	require.NoError(t, err)
	require.Equal(t, 20, got.Limit)

	_, err = Request{}.DecodeMax(20, ColumnMapping{}, OrderBy[string]{})
	require.Error(t, err, "an invalid fallback ordering must be rejected")
}

func Test_Request_DecodeCursorTokenError(t *testing.T) {
	_, err := Request{Cursor: "!!"}.Decode(ColumnMapping{"id": "id"}, OrderBy[string]{Column: "id", Direction: DirectionASC})
	require.ErrorIs(t, err, ErrCursorToken)
}

func Test_NewResponse(t *testing.T) {
	page := Page[Row]{
		Items:   rowsWithIDs(1, 2),
		Cursors: Cursors{End: IntCursor(2), Next: IntCursor(3)},
	}

	data, err := json.Marshal(NewResponse(page))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"items": [{"id": 1, "title": "post 1"}, {"id": 2, "title": "post 2"}],
		"cursors": {"start": null, "end": "`+IntCursor(2).String()+`", "next": "`+IntCursor(3).String()+`"},
		"hasMore": true
	}`, string(data))

	empty, err := json.Marshal(NewResponse(Page[Row]{}))
	require.NoError(t, err)
	require.JSONEq(t, `{"items": [], "cursors": {"start": null, "end": null, "next": null}, "hasMore": false}`, string(empty))
}

func Test_Response_NextRequest(t *testing.T) {
	// A client feeds cursors.next from one response into the next request.
	var resp Response[Row]
	data, err := json.Marshal(NewResponse(Page[Row]{
		Items:   rowsWithIDs(1),
		Cursors: Cursors{End: IntCursor(1), Next: IntCursor(2)},
	}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &resp))

	params, err := Request{Limit: 1, Cursor: resp.Cursors.Next.String()}.
		Decode(ColumnMapping{"id": "id"}, OrderBy[string]{Column: "id", Direction: DirectionASC})
	require.NoError(t, err)
	require.Equal(t, IntCursor(2), params.Cursor)
}
