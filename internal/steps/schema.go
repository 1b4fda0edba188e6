package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// launchResponseSchema — минимальный контракт ответа launch-эндпоинта.
const launchResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["job"],
  "properties": {
    "job": {
      "anyOf": [
        {"type": "integer"},
        {"type": "string", "minLength": 1}
      ]
    }
  }
}`

var launchSchema = jsonschema.MustCompileString("launch_response.schema.json", launchResponseSchema)

// parseJobID разбирает тело ответа 201 и извлекает идентификатор job.
func parseJobID(body []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", fmt.Errorf("decode response: trailing data after JSON value")
	}
	if err := launchSchema.Validate(doc); err != nil {
		return "", fmt.Errorf("validate response: %w", err)
	}

	// После валидации doc — объект с полем job.
	switch job := doc.(map[string]any)["job"].(type) {
	case json.Number:
		return canonicalInteger(job)
	case string:
		return job, nil
	default:
		return "", fmt.Errorf("unexpected job type %T", job)
	}
}

// canonicalInteger приводит целое JSON-число к десятичной записи без
// экспоненты и дробной части: 4.2e1 и 42.0 дают "42".
func canonicalInteger(n json.Number) (string, error) {
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return "", fmt.Errorf("job %s is not an integer", n)
	}
	return r.Num().String(), nil
}
