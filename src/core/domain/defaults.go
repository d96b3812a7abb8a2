package domain

// DefaultPageSize is used when a page request does not carry a size.
const DefaultPageSize = 20

// MaxPageSize caps page sizes requested over HTTP.
const MaxPageSize = 2000
