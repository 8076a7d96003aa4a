// Package server provides the HTTP server hosting the export API. It is
// backed by Gin, wrapped with h2c so HTTP/2 works without TLS, and carries a
// standard middleware stack: panic recovery, request IDs, CORS, body size
// limiting, and request logging.
package server
