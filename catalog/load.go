package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"breathbot/types"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ValidationError lists every schema violation found in a catalog document.
type ValidationError struct {
	Document string
	Errors   []FieldError
}

// FieldError is a single violation at a JSON path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s failed validation:\n", ve.Document))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Load reads the challenge groups file and, when overridesPath is not empty,
// the SEO override tables. Both documents are schema-checked before decoding.
func Load(challengesPath, overridesPath string) (*Catalog, error) {
	data, err := os.ReadFile(challengesPath)
	if err != nil {
		return nil, fmt.Errorf("read challenges: %w", err)
	}
	groups, err := ParseChallenges(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", challengesPath, err)
	}

	var overrides []map[int]types.Override
	if overridesPath != "" {
		data, err := os.ReadFile(overridesPath)
		if err != nil {
			return nil, fmt.Errorf("read overrides: %w", err)
		}
		overrides, err = ParseOverrides(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", overridesPath, err)
		}
	}

	return New(groups, overrides)
}

// ParseChallenges decodes a JSON array of challenge groups.
func ParseChallenges(data []byte) ([][]types.Challenge, error) {
	if err := validate("challenges.schema.json", "challenges", data); err != nil {
		return nil, err
	}

	var groups [][]types.Challenge
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("decode challenges: %w", err)
	}
	return groups, nil
}

// ParseOverrides decodes a JSON array of override tables keyed by decimal id.
func ParseOverrides(data []byte) ([]map[int]types.Override, error) {
	if err := validate("overrides.schema.json", "overrides", data); err != nil {
		return nil, err
	}

	var raw []map[string]types.Override
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}

	tables := make([]map[int]types.Override, len(raw))
	for i, table := range raw {
		tables[i] = make(map[int]types.Override, len(table))
		for key, ov := range table {
			id, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("override table %d: key %q is not an id: %w", i, key, err)
			}
			tables[i][id] = ov
		}
	}
	return tables, nil
}

// BatchEntry is one named file of an ad-hoc batch.
type BatchEntry struct {
	Name     string
	Override types.Override
}

// LoadBatch reads a JSON object mapping file names (without extension) to
// title/description/tags. Entries are returned sorted by name.
func LoadBatch(path string) ([]BatchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch metadata: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch decodes ad-hoc batch metadata.
func ParseBatch(data []byte) ([]BatchEntry, error) {
	if err := validate("batch.schema.json", "batch metadata", data); err != nil {
		return nil, err
	}

	var raw map[string]types.Override
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode batch metadata: %w", err)
	}

	entries := make([]BatchEntry, 0, len(raw))
	for name, ov := range raw {
		entries = append(entries, BatchEntry{Name: name, Override: ov})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func validate(schemaName, document string, data []byte) error {
	schema, err := schemaFS.ReadFile("schemas/" + schemaName)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", schemaName, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate %s: %w", document, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{
		Document: document,
		Errors:   make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
