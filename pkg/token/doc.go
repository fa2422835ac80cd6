// Package token generates opaque session tokens and derives storage lookup
// keys from them.
//
// Tokens carry no decodable structure: they are random bytes encoded for safe
// use in cookies and URLs. Only the SHA-256 hash of a token is ever persisted,
// so a leaked database cannot be replayed against live sessions.
//
// Usage:
//
//	raw, err := token.Generate()
//	if err != nil {
//		return err
//	}
//	key := token.Hash(raw) // storage primary key
package token
