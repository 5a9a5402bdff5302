package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrNoToken          = goerr.New("no token for provider", goerr.T(ErrTagNoToken))
	ErrProviderNotFound = goerr.New("provider not configured", goerr.T(ErrTagProviderUnconfigured))
	ErrMissingOrgAnchor = goerr.New("no organizational anchor could be resolved", goerr.T(ErrTagMissingOrgAnchor))
)

// Error tags classify every remote-call or input failure. A tag is attached at
// the call site that observed the failure and inspected with goerr.HasTag; no
// other fault type crosses a cell boundary.
var (
	ErrTagAuthFailed           = goerr.NewTag("auth_failed")
	ErrTagTokenExpired         = goerr.NewTag("token_expired")
	ErrTagNoToken              = goerr.NewTag("no_token")
	ErrTagTimeout              = goerr.NewTag("timeout")
	ErrTagUnreachable          = goerr.NewTag("unreachable")
	ErrTagMalformedResponse    = goerr.NewTag("malformed_response")
	ErrTagMissingOrgAnchor     = goerr.NewTag("missing_org_anchor")
	ErrTagProviderUnconfigured = goerr.NewTag("provider_unconfigured")
	ErrTagValidation           = goerr.NewTag("validation")
)
