// Package server provides the HTTP routing and OAuth callback handling
// behind the CLI's authorization flow.
//
// [BasicRouter] wraps [http.ServeMux] with middleware support and method
// filtering. [OAuthHandler] implements the OAuth2 authorization code
// callback: it validates the state parameter (CSRF protection), exchanges
// the authorization code for tokens, and delivers the result through a
// channel. Only one callback is processed per handler.
//
// When the user runs the auth command, a temporary HTTP server starts on the
// configured host and port, handles the callback, and shuts down after the
// token is received.
package server
