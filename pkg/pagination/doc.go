// Package pagination provides sequential accumulation of skip/limit
// paginated collections.
//
// The Polly API pages its poll listing with skip and limit query parameters
// and gives no total count, so exhaustion has to be detected from the page
// contents themselves.
//
// Example usage:
//
//	acc := pagination.NewAccumulator(fetchPage, pagination.DefaultConfig())
//	polls, err := acc.FetchAll(ctx)
//
// The accumulator:
//   - Fetches pages starting at skip 0, advancing by the page size
//   - Preserves server ordering across pages
//   - Stops on the first empty or short page
//   - Handles errors gracefully (returns partial data)
package pagination
