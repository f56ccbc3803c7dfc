// internal/corpus/loader.go

// Package corpus loads and validates caller-supplied content corpora. A
// corpus file is a JSON object keyed by area, each value holding the
// entry name, reusable content, and topical tags.
package corpus

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"grant-crosswalk/internal/common/errors"
	"grant-crosswalk/internal/models"
)

const corpusSchema = `{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {
		"type": "object",
		"required": ["name", "content"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"content": {"type": "string", "minLength": 1},
			"tags": {
				"type": "array",
				"items": {"type": "string"}
			}
		}
	}
}`

// LoadFile reads, validates, and decodes a corpus file. The entry Area
// field is backfilled from the map key.
func LoadFile(path string) (map[string]models.ContentCorpusEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewCorpusNotFoundError(path)
		}
		return nil, errors.NewCorpusInvalidError(err.Error())
	}
	return Load(data)
}

// Load validates raw corpus JSON against the schema and decodes it.
func Load(data []byte) (map[string]models.ContentCorpusEntry, error) {
	schemaLoader := gojsonschema.NewStringLoader(corpusSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errors.NewCorpusInvalidError(err.Error())
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, errors.NewCorpusInvalidError(strings.Join(errs, "; "))
	}

	var corpus map[string]models.ContentCorpusEntry
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, errors.NewCorpusInvalidError(err.Error())
	}

	for area, entry := range corpus {
		if entry.Area == "" {
			entry.Area = area
			corpus[area] = entry
		}
	}

	return corpus, nil
}
