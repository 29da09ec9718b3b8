// Package pagination implements the cursor-driven paging protocol shared
// by every ledger query endpoint.
//
// The ledger returns results in pages: an ordered batch of items, an
// opaque continuation cursor, and a last-page flag. Because a cursor is
// only known once the previous page has been decoded, paging is strictly
// sequential and lazy: one request per advance, no fetch-ahead.
//
// Example usage:
//
//	it := pagination.NewItemIterator[ledger.Action](client, "list-actions", b.Build())
//	for {
//		action, err := it.Next(ctx)
//		if errors.Is(err, pagination.ErrDone) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		// use action
//	}
//
// The iterators are single-pass and not safe for concurrent use. The
// Requester they fetch through may be shared freely across goroutines.
package pagination
