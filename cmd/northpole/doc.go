// Command northpole runs the in-memory SantaOS API used during development
// and tests. See package devapi for the routes it serves.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - --seed loads a small demo workshop (three elves, two wishlists, two
//     tasks and a delivery).
//   - --quiet-writes answers successful mutations with 204 and no body, which
//     exercises the client's local merge path.
//   - A lightweight access log records method, path, remote, status, bytes,
//     duration and request id for each request.
//   - The default listen address is :8080.
package main
