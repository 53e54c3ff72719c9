// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by all handlers.

# Helpers

  - WithLogging: request start/finish logging with duration
  - JSONResponse / ErrorResponse: JSON envelope writers
  - ParseJSONBody: request body decoding
  - CORS: cross-origin headers and preflight handling

ErrorResponse pairs the standard status text with a human-readable
message so validation failures resolve entirely at the boundary.
*/
package middleware
