// Package crypto provides the per-artifact encryption engines.
//
// Exactly one engine is active per run, selected once at configuration
// time:
//   - Plain: identity, bytes pass through untouched
//   - CBC: OpenSSL enc compatible envelope ("Salted__" magic + 8-byte
//     random salt), key and IV derived together with PBKDF2-HMAC-SHA256,
//     AES in CBC mode with PKCS#7 padding
//   - PGP: OpenPGP symmetric encryption (passphrase-protected session key)
//
// Every artifact gets an independent encryption context: a fresh salt
// (CBC) or session key (PGP) per file, so no key or IV is ever reused
// across artifacts.
//
// Use ClearBytes() to zero passphrase material after use.
package crypto
