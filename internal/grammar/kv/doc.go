// Package kv parses line-oriented configuration files directly from text.
//
//	# server settings
//	server.host = "localhost"
//	server.port = 8080   # 1..65535
//	debug = false
//
// Values are integers, double-quoted strings (no escapes) or booleans.
// Checking reports duplicate keys as warnings and port numbers out of range
// as errors.
package kv
