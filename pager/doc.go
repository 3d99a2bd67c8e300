// Package pager provides keyset (cursor) pagination primitives for GORM.
//
// Overview
//
// A page is anchored on the last-seen row's sort value plus a unique
// tie-break id instead of a numeric offset:
//   - KeysetPager: applies ordering, the keyset condition and a lookahead
//     limit to a GORM query. Backward pages are fetched in reversed order.
//   - Run: executes a KeysetPager, detects further pages in both directions
//     and converts rows to their output representation.
//   - Cursor: the (sort value, tie-break id, direction) anchor, also
//     available as an opaque URL-safe token.
//   - ResolveSort: maps a SortBy mode to an ordering over date, name and
//     move-in columns.
//   - OffsetPager and Filters: LIMIT/OFFSET listing with column filters for
//     data-grid style endpoints.
//
// Orderings must end with a unique NOT NULL column, otherwise the pager
// refuses to run with ErrNonDeterministicOrdering.
package pager
