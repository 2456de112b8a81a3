package generation

// SchemaType enumerates the node kinds a response schema can declare.
type SchemaType string

const (
	TypeObject SchemaType = "OBJECT"
	TypeArray  SchemaType = "ARRAY"
	TypeString SchemaType = "STRING"
	TypeNumber SchemaType = "NUMBER"
)

// Schema is a declarative description of the JSON shape the generator is
// asked to produce. It is passed to the provider as a constraint, not merely
// documentation; conforming output is expected but not guaranteed, so callers
// must still validate required fields on the way back in.
type Schema struct {
	Type        SchemaType
	Description string

	// Properties and Required apply to TypeObject nodes.
	Properties map[string]*Schema
	Required   []string

	// Items applies to TypeArray nodes.
	Items *Schema

	// Enum restricts a TypeString node to a fixed set of values.
	Enum []string

	// Nullable marks a field the generator may legitimately set to null.
	Nullable bool
}

// Object builds an object schema from its properties and required field list.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}

// Array builds an array schema with the given item schema.
func Array(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// String builds a string schema, optionally documented for the generator.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// Number builds a number schema, optionally documented for the generator.
func Number(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

// StringEnum builds a string schema restricted to the given values.
func StringEnum(values ...string) *Schema {
	return &Schema{Type: TypeString, Enum: values}
}
