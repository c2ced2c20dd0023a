package city

import (
	"encoding/json"
	"maps"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/cities/pkg/validator"
)

const (
	maxNameLength  = 100
	maxExtraFields = 50
	maxFieldDepth  = 20 // nested objects and arrays below a top-level field
)

// City is a stored city record. Fields other than the name are kept as-is in Extra.
type City struct {
	ID    bson.ObjectID  `bson:"_id"`
	City  string         `bson:"city"`
	Extra map[string]any `bson:",inline"`
}

// MarshalJSON renders the record as one flat object: id as hex, the name under
// "city" and every extra field next to them.
func (c City) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+2)
	maps.Copy(out, c.Extra)
	out["id"] = c.ID.Hex()
	out["city"] = c.City
	return json.Marshal(out)
}

// CreateInput is the payload accepted by Create.
type CreateInput struct {
	City  string
	Extra map[string]any

	nameNotString bool
}

// UnmarshalJSON accepts any JSON object. "city" is taken as the name and all
// other keys are collected into Extra.
func (in *CreateInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*in = CreateInput{}
	if name, ok := raw["city"]; ok {
		if err := json.Unmarshal(name, &in.City); err != nil {
			in.nameNotString = true
		}
		delete(raw, "city")
	}

	if len(raw) == 0 {
		return nil
	}
	in.Extra = make(map[string]any, len(raw))
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		in.Extra[k] = val
	}
	return nil
}

// Validate checks the name and the extra field keys.
func (in CreateInput) Validate() error {
	name := strings.TrimSpace(in.City)
	return validator.Apply(
		validator.When("city", !in.nameNotString, "must be a string", "validation.string"),
		validator.RequiredString("city", name),
		validator.MaxLenString("city", name, maxNameLength),
		validator.PrintableString("city", name),
		validator.MaxLenMap("fields", in.Extra, maxExtraFields),
		validator.ExcludedKeys("fields", in.Extra, "_id", "id"),
		validator.KeysMatch("fields", in.Extra, validFieldName, "invalid field names"),
		validator.When("fields", !tooDeep(in.Extra, maxFieldDepth), "fields are nested too deeply", "validation.depth"),
	)
}

// tooDeep reports whether v nests objects or arrays more than limit levels down.
func tooDeep(v any, limit int) bool {
	switch t := v.(type) {
	case map[string]any:
		if limit < 0 {
			return true
		}
		for _, e := range t {
			if tooDeep(e, limit-1) {
				return true
			}
		}
	case []any:
		if limit < 0 {
			return true
		}
		for _, e := range t {
			if tooDeep(e, limit-1) {
				return true
			}
		}
	}
	return false
}

// validFieldName rejects keys the storage engine treats as operators or paths.
func validFieldName(k string) bool {
	return k != "" && !strings.HasPrefix(k, "$") && !strings.Contains(k, ".")
}
