package messages

import (
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var inputReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
	ExpandedStruct:            true,
	Mapper: func(t reflect.Type) *jsonschema.Schema {
		switch t {
		case reflect.TypeFor[uuid.UUID]():
			return &jsonschema.Schema{Type: "string", Format: "uuid"}
		case reflect.TypeFor[strfmt.DateTime](), reflect.TypeFor[time.Time]():
			return &jsonschema.Schema{Type: "string", Format: "date-time"}
		}
		return nil
	},
}

// Schema returns the JSON schema of an Input document.
func Schema() *jsonschema.Schema {
	return inputReflector.Reflect(&Input{})
}

// JSONSchema describes a system prompt: a string, any structured value or null.
func (System) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "object"},
			{Type: "array"},
			{Type: "number"},
			{Type: "boolean"},
			{Type: "null"},
		},
	}
}

var knownBlockTypes = []any{
	TypeStructuredText,
	TypeUnstructuredText,
	TypeMissingFunctionText,
	TypeRawText,
	TypeToolCall,
	TypeToolResult,
	TypeFile,
	TypeFileError,
}

// JSONSchema describes the content of a message as an array of tagged blocks.
// Blocks with a tag outside the known set are accepted as well.
func (Content) JSONSchema() *jsonschema.Schema {
	str := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }

	variants := []*jsonschema.Schema{
		blockSchema(TypeStructuredText, []string{"arguments"}, "arguments", &jsonschema.Schema{}),
		blockSchema(TypeUnstructuredText, []string{"text"}, "text", str()),
		blockSchema(TypeMissingFunctionText, []string{"value"}, "value", str()),
		blockSchema(TypeRawText, []string{"value"}, "value", str()),
		blockSchema(TypeToolCall, []string{"id", "name"}, "id", str(), "name", str(), "arguments", str()),
		blockSchema(TypeToolResult, []string{"id", "result"}, "id", str(), "name", str(), "result", str()),
		blockSchema(TypeFile, []string{"file"},
			"file", objectSchema([]string{"mime_type"}, "dataUrl", str(), "mime_type", str()),
			"storage_path", objectSchema([]string{"path"}, "path", str()),
		),
		blockSchema(TypeFileError, nil, "error", str()),
		// any other tag decodes to UnknownBlock
		objectSchema([]string{"type"}, "type", &jsonschema.Schema{
			Type: "string",
			Not:  &jsonschema.Schema{Enum: knownBlockTypes},
		}),
	}

	return &jsonschema.Schema{
		Type:  "array",
		Items: &jsonschema.Schema{OneOf: variants},
	}
}

func blockSchema(tpe string, required []string, props ...any) *jsonschema.Schema {
	tag := &jsonschema.Schema{Type: "string", Const: tpe}
	return objectSchema(append([]string{"type"}, required...), append([]any{"type", tag}, props...)...)
}

func objectSchema(required []string, props ...any) *jsonschema.Schema {
	properties := orderedmap.New[string, *jsonschema.Schema]()
	for i := 0; i+1 < len(props); i += 2 {
		properties.Set(props[i].(string), props[i+1].(*jsonschema.Schema))
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
