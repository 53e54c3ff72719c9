// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the anonymous session identity used to enforce
one active vote per session per poll.

# Session Tokens

A session id is a random UUID minted on a client's first vote. It
travels in a cookie as a signed token:

	<session-id>.<hmac-sha256(session-id, secret)>

SignSession builds the token, VerifySession checks it with a
constant-time comparison. The token is tamper-evident, not encrypted:
the id is visible, but the signature prevents a client from minting or
editing one.
*/
package auth
