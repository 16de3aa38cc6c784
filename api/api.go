package api

import _ "embed"

// OpenAPISpec — встроенная спецификация API, отдаётся на /swagger/openapi.json.
//
//go:embed openapi.json
var OpenAPISpec []byte
