// Package devapi is an in-memory implementation of the SantaOS REST API used
// for local demos and integration tests.
//
// HTTP API
//
//	POST   /auth/login                 {name, role} -> user with bearer token
//	GET    /{resource}                 wishlists, tasks, deliveries, workers
//	POST   /{resource}                 create; 201 with the record
//	PATCH  /{resource}/{id}            partial update
//	PATCH  /{resource}/{id}/status     {status}
//	PATCH  /tasks/{id}/assign          {assigned_to}
//	DELETE /{resource}/{id}            204
//	GET    /workers/{id}/tasks         tasks assigned to one worker
//
// Every route except /auth/login requires "Authorization: Bearer <token>".
// Errors are JSON {"error": "..."} with a non-2xx status. Parents only see
// their own wishlists. With QuietWrites set, successful mutations answer 204
// with no body.
//
// All state is held in memory and lost on process exit.
package devapi
