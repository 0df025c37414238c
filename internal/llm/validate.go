package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The offer schema is fixed for the process lifetime, so it is compiled
// once; BuildOfferJSONSchema stays the single source for both the prompt
// and the validator, which keeps the two from drifting apart.
var compileOfferSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(BuildOfferJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal offer schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("offer.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add offer schema: %w", err)
	}
	return compiler.Compile("offer.json")
})

// CheckOfferPayload reports whether a sanitized model payload matches the
// offer extraction schema.
func CheckOfferPayload(data []byte) error {
	schema, err := compileOfferSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("payload does not match offer schema: %w", err)
	}
	return nil
}
