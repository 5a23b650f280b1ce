// Package config loads runtime configuration for the coursehub CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   base URL of the coursehub API
//	-t int      per-request timeout in seconds
//	-k string   file the session token is kept in
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "token_file": "/home/me/.coursehub/token"
//	}
package config
