// Package commands defines the santaos CLI. Each subcommand is a view over
// one of the shared sync stores.
//
// Commands
//
//   - login, logout, whoami    Hold or drop the signed-in user
//   - wishlists                list | submit | status | delete
//   - tasks                    list | create | assign | status | delete
//   - deliveries               list | create | status
//   - workers list             The production roster
//   - worker                   tasks | start | done, for the signed-in elf
//   - watch <resource>         Re-render a collection on every change
//
// # Implementation
//
// The root command loads configuration (defaults, .env, SANTAOS_* variables,
// then flags) and builds the app.Wire before any subcommand runs. Views start
// the store they read, wait for its first fetch, and stop it on exit; a
// mutation goes through the store so the snapshot is patched in place.
package commands
