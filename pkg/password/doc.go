// Package password hashes and verifies credential secrets with a server-side
// key.
//
// The digest is SHA3-512 over the password concatenated with the server
// secret, hex encoded. Verification recomputes the digest and compares in
// constant time, so a mismatch reveals nothing about where the difference
// occurred.
//
// Construction fails when the secret is empty; there is no insecure fallback.
package password
