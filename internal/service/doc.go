// Package service is the authenticated request engine in front of the portal
// client.
//
// A Service owns the session state it was given. Every data call goes
// through authenticatedGet:
//
//  1. log in first if no token is held
//  2. fill <studentID> in the path and GET it with the token header
//  3. classify the body and act on its kind
//
// The expected payload is returned. Any error notice means the portal no
// longer accepts the token: the service logs in again and retries the same
// path, up to MaxRelogins times. A notice that survives the last re-login is
// returned as *APIError, which unwraps to ErrReloginLimit. Anything else
// becomes *UnexpectedResponseError with the raw body.
//
// A successful login overwrites the token file. A rejected login removes it
// and returns *LoginRejectedError; the CLI treats that as fatal.
//
// Each call is logged with a fresh request_id so a re-login and its retry
// can be followed in the debug log.
package service
