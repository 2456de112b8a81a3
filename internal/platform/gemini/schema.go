package gemini

import (
	"google.golang.org/genai"

	"github.com/phrazzld/studyhub-api/internal/generation"
)

// toGenAISchema converts the provider-independent schema description into the
// genai SDK's schema type. Unknown node types fall back to STRING rather than
// failing: the schema is a constraint sent to the provider, and a lax
// constraint is preferable to refusing the call outright.
func toGenAISchema(s *generation.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}

	switch s.Type {
	case generation.TypeObject:
		out.Type = genai.TypeObject
	case generation.TypeArray:
		out.Type = genai.TypeArray
	case generation.TypeNumber:
		out.Type = genai.TypeNumber
	default:
		out.Type = genai.TypeString
	}

	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}

	if s.Items != nil {
		out.Items = toGenAISchema(s.Items)
	}

	return out
}

// toGenAIParts converts prompt parts into the SDK part type. Validation of
// part contents happens in Request.Validate before this is called.
func toGenAIParts(parts []generation.Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			out = append(out, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		out = append(out, genai.NewPartFromText(p.Text))
	}
	return out
}
