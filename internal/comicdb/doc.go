// Package comicdb defines the reference records returned by the remote comic
// database plus the Gateway interface the matching core consumes, along with
// an HTTP client implementation for ComicVine-style JSON APIs.
//
// SeriesRef and IssueRef are lightweight identity-by-key records: equality
// and ordering are defined solely by their keys, and both are immutable after
// construction. Issue is the full metadata record fetched lazily for the one
// issue a match resolves to.
package comicdb
