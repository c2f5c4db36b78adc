// Package spec embeds the OpenAPI description of the travel journal API.
// It is served by the HTTP server at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
