// Package keyset implements cursor (keyset) pagination over a single sort column.
//
// Overview
//
// A request is served in two pure stages around one query:
//
//	pagination := keyset.Plan(params)           // plan
//	rows := run(pagination.Predicate())         // execute (collaborator)
//	page, err := keyset.Reduce(pagination, rows, extract) // reduce
//
// The predicate orders by the sort field, fetches one row more than the page
// size and, when a cursor is given, filters with an inclusive comparison
// (">=" ascending, "<=" descending). The reducer drops the extra row and uses
// its sort value as the Next cursor, so the next page starts exactly at it.
//
// Key concepts
//   - Cursor: a tagged scalar (int, float, text, timestamp) taken from a row's
//     sort field. It encodes to an opaque URL-safe token for transport.
//   - Cursors: the {start, end, next} bundle returned with every page.
//   - Executor: runs a Predicate. GORMExecutor does it with gorm.
//   - Request/Response: wire payloads with limit, sort alias and cursor token.
//
// The sort column must be unique for pages to neither repeat nor skip rows.
// Rows sharing the boundary value with the Next cursor are returned again on
// the following page.
package keyset
