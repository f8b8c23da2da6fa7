// Package api provides the HTTP implementation of domain.ResourceClient used
// by santaos.
//
// The SantaOS backend exposes one REST collection per resource type
// (wishlists, tasks, deliveries, workers). This package offers a shared HTTP
// transport (HTTP) and a generic typed client per collection (Resource).
//
// Supported operations include:
//   - Listing a collection (GET /{resource}).
//   - Creating a record (POST /{resource}).
//   - Partial updates, optionally on a narrow sub-path (PATCH /{resource}/{id}[/status|/assign]).
//   - Deleting a record (DELETE /{resource}/{id}).
//   - Signing in (POST /auth/login).
//
// All requests are JSON over HTTP, accept a context for cancellation and are
// bounded by a per-request timeout. Transport failures come back as
// *domain.NetworkError; non-2xx statuses and payloads that fail validation
// come back as *domain.ServerError carrying the server's message.
package api
