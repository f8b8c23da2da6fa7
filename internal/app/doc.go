// Package app wires application dependencies for the CLI.
//
// Config is assembled from defaults, an optional .env file, SANTAOS_*
// environment variables and finally command-line flags. NewWire builds the
// HTTP transport, the session store and exactly one sync store per resource
// type from it; every view shares those stores through the Wire.
package app
