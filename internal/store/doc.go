// Package store keeps the signed-in user between CLI invocations.
//
// The user object, token included, is sealed with a key derived from the
// user's passphrase (scrypt, then ChaCha20-Poly1305) and written atomically
// under the configured home directory. A plaintext profile beside it records
// who is signed in, without the token, so whoami works without a passphrase.
package store
