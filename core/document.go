package core

import (
	"bytes"
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Document is a single stored document, addressed by its full path.
type Document struct {
	Path  string          `json:"path"`
	Data  json.RawMessage `json:"data"`
	CDate time.Time       `json:"cdate"`
	MDate time.Time       `json:"mdate"`
}

// ID returns the last path segment.
func (d Document) ID() string {
	idx := strings.LastIndex(d.Path, "/")
	return d.Path[idx+1:]
}

// Snapshot is what the store emits to a listener: the full current state of one path.
// For a document path Documents holds zero or one entries; for a collection path it holds
// every child document ordered by path.
type Snapshot struct {
	Path      string     `json:"path"`
	Exists    bool       `json:"exists"`
	Documents []Document `json:"documents"`
}

// Patch is a partial update. Keys may use dots to reach into nested objects
// ("enabledAbilities.2"). Union and Remove edit array fields in place: Union appends each value
// not already present, Remove drops every element equal to one of the values. Both are applied
// by the store against the current document, so concurrent edits of one array do not lose
// each other.
type Patch struct {
	Set    map[string]any   `json:"set,omitempty"`
	Unset  []string         `json:"unset,omitempty"`
	Union  map[string][]any `json:"union,omitempty"`
	Remove map[string][]any `json:"remove,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return len(p.Set) == 0 && len(p.Unset) == 0 && len(p.Union) == 0 && len(p.Remove) == 0
}

// Fields returns every key the patch touches, sorted and without duplicates.
func (p Patch) Fields() []string {
	fields := make([]string, 0, len(p.Set)+len(p.Unset)+len(p.Union)+len(p.Remove))
	for k := range p.Set {
		fields = append(fields, k)
	}
	fields = append(fields, p.Unset...)
	for k := range p.Union {
		fields = append(fields, k)
	}
	for k := range p.Remove {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return slices.Compact(fields)
}

func SetField(field string, value any) Patch {
	return Patch{Set: map[string]any{field: value}}
}

func UnsetField(field string) Patch {
	return Patch{Unset: []string{field}}
}

// UnionField adds values to the array at field, skipping those already present.
func UnionField(field string, values ...any) Patch {
	return Patch{Union: map[string][]any{field: values}}
}

// RemoveField removes every element equal to one of values from the array at field.
func RemoveField(field string, values ...any) Patch {
	return Patch{Remove: map[string][]any{field: values}}
}

func decodeObject(data json.RawMessage) (map[string]any, error) {
	object := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return object, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&object); err != nil {
		return nil, errors.Wrap(NewErrorValidation("document is not a JSON object"), err.Error())
	}
	if object == nil {
		object = make(map[string]any)
	}
	return object, nil
}

// ApplyPatch returns data with patch applied.
func ApplyPatch(data json.RawMessage, patch Patch) (json.RawMessage, error) {
	object, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	for _, field := range patch.Fields() {
		keys := strings.Split(field, ".")
		for _, key := range keys {
			if key == "" {
				return nil, NewErrorValidation("malformed field: " + field)
			}
		}

		parent := object
		for _, key := range keys[:len(keys)-1] {
			child, ok := parent[key].(map[string]any)
			if !ok {
				child = make(map[string]any)
				parent[key] = child
			}
			parent = child
		}

		last := keys[len(keys)-1]
		if value, ok := patch.Set[field]; ok {
			parent[last] = value
			continue
		}
		union, hasUnion := patch.Union[field]
		remove, hasRemove := patch.Remove[field]
		if !hasUnion && !hasRemove {
			delete(parent, last)
			continue
		}

		array, err := editArray(parent[last], union, remove)
		if err != nil {
			return nil, errors.Wrap(err, field)
		}
		parent[last] = array
	}

	return json.Marshal(object)
}

// arrayKey is the canonical JSON of value, so a struct and its decoded map compare equal.
func arrayKey(value any) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", NewErrorValidation("array value is not serializable")
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return "", NewErrorValidation("array value is not serializable")
	}
	canonical, err := json.Marshal(decoded)
	if err != nil {
		return "", NewErrorValidation("array value is not serializable")
	}
	return string(canonical), nil
}

// editArray applies union then remove to current. A missing or non-array field counts as empty.
func editArray(current any, union, remove []any) ([]any, error) {
	existing, _ := current.([]any)

	array := make([]any, 0, len(existing)+len(union))
	keys := make(map[string]bool, len(existing)+len(union))
	for _, element := range existing {
		key, err := arrayKey(element)
		if err != nil {
			return nil, err
		}
		keys[key] = true
		array = append(array, element)
	}

	for _, value := range union {
		key, err := arrayKey(value)
		if err != nil {
			return nil, err
		}
		if keys[key] {
			continue
		}
		keys[key] = true
		array = append(array, value)
	}

	if len(remove) == 0 {
		return array, nil
	}
	removed := make(map[string]bool, len(remove))
	for _, value := range remove {
		key, err := arrayKey(value)
		if err != nil {
			return nil, err
		}
		removed[key] = true
	}
	kept := array[:0]
	for _, element := range array {
		key, err := arrayKey(element)
		if err != nil {
			return nil, err
		}
		if !removed[key] {
			kept = append(kept, element)
		}
	}
	return kept, nil
}
