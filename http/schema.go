package http

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// verifyRequestSchema constrains verification and admission request bodies
// before any decoding: all three fields present, each a 0x-optional hex
// string of the exact fixed length (32-byte account, 256-byte message,
// 65-byte signature).
const verifyRequestSchema = `{
	"type": "object",
	"required": ["account", "message", "signature"],
	"additionalProperties": false,
	"properties": {
		"account":   {"type": "string", "pattern": "^(0x)?[0-9a-fA-F]{64}$"},
		"message":   {"type": "string", "pattern": "^(0x)?[0-9a-fA-F]{512}$"},
		"signature": {"type": "string", "pattern": "^(0x)?[0-9a-fA-F]{130}$"}
	}
}`

var verifySchema = gojsonschema.NewStringLoader(verifyRequestSchema)

// validateVerifyRequest checks body against verifyRequestSchema and
// returns a single describing error on mismatch.
func validateVerifyRequest(body []byte) error {
	result, err := gojsonschema.Validate(verifySchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("invalid request: %s", errs[0])
		}
		return fmt.Errorf("invalid request")
	}
	return nil
}
