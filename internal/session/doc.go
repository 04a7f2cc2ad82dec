// Package session holds the portal session token: its wire shape, the JSON
// file it is cached in between runs, and the in-process slot the request
// engine reads and replaces.
//
// The token file is written atomically (temp file + rename) with mode 0600 and
// is fully overwritten on every successful login. Load never fails: a missing
// or corrupt file means "no token", which makes the next request log in.
package session
