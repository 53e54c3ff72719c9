// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Configuration Sources

Flags take precedence over environment variables:

	-p / PORT                      Server port (default: 3333)
	-d / DATABASE_URL              Database connection string (required)
	-t / DATABASE_TYPE             sqlite or postgres (default: sqlite)
	--cookie-secret / COOKIE_SECRET  Session cookie signing secret (required)

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

Secrets should come from the environment in production; the flags
exist for local development.
*/
package cliparse
