// Package portal provides the HTTP client and wire types for the school
// portal REST API, plus the classifier that turns a response body into a
// tagged Envelope.
//
// # Architecture
//
//   - client.go: transport (login POST, authenticated GET, default headers)
//   - types.go: structures mirroring the portal's JSON
//   - classify.go: structural matching of bodies into Envelope kinds
//
// # Endpoints
//
//   - POST /auth/login
//   - GET /students/{id}/grades
//   - GET /students/{id}/absences/details
//   - GET /students/{id}/agenda/all/{start}/{end}
//   - GET /students/{id}/lessons/{start}/{end}
//
// Paths carry a <studentID> placeholder until ExpandPath fills it.
//
// # Classification
//
// The portal never tags its responses, so Classify inspects which keys are
// present. Data responses are tried in this order:
//
//  1. notice ({statusCode, error, message}): always an expired token
//  2. grades, absences (events), agenda, lessons
//
// Login responses try the success shape ({token, ident}) before the error
// notice. A body that matches nothing is KindUnknown; a body that is not JSON
// returns ErrInvalidJSON. Both keep the raw body in Envelope.Raw.
//
// # Error Handling
//
// The client does not treat HTTP status codes as failures because the portal
// reports expiry and bad credentials through 4xx bodies. Only transport and
// read failures are returned as errors, wrapped with context via fmt.Errorf.
//
// The client never retries; the request engine in package service owns the
// re-login policy.
package portal
