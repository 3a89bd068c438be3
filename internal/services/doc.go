// Package services provides the Spotify Web API client used by the
// playlist generation workflow.
//
// The [Service] interface abstracts the operations the workflow depends on:
// profile lookup, top track retrieval, exhaustive playlist listing, and
// playlist mutation (create, replace, append, description update).
//
// The [OAuthService] interface extends Service for OAuth providers,
// exposing the consent URL and token-based authentication used by the CLI's
// auth command.
//
// [SpotifyService] is the concrete implementation, layered on
// [golang.org/x/oauth2] for token handling. Request bodies and responses
// are plain JSON over net/http; a 401 response maps to
// [shared.ErrTokenExpired] so the CLI can reauthorize and retry once.
//
// [TimeRange] is the three-valued enum accepted by the top tracks endpoint
// (short_term, medium_term, long_term). Validation happens before any
// network call, and each value maps to a fixed generated playlist name.
package services
