package types

import "github.com/m-mizutani/goerr/v2"

// Error tags shared across layers. Callers branch on them with goerr.HasTag.
var (
	ErrTagFetchFailed       = goerr.NewTag("fetch_failed")
	ErrTagInvalidResponse   = goerr.NewTag("invalid_response")
	ErrTagNoSelection       = goerr.NewTag("no_selection")
	ErrTagUnknownTechnology = goerr.NewTag("unknown_technology")
	ErrTagInvalidRequest    = goerr.NewTag("invalid_request")
)
