// Package refcache memoizes slow comic database lookups for the lifetime of
// a scraping session.
//
// The cache is keyed by normalized search terms (series searches) or series
// keys (issue listings). Hits skip the fetch entirely, failed fetches are
// never stored, concurrent fetches for the same key are coalesced, and the
// store is bounded by an LRU cap as a defense against pathological session
// lengths.
package refcache
