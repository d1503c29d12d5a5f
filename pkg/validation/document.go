// Document validation for the persistence boundary: the raw flow document
// shape is checked with go-playground/validator before it is decoded into
// domain entities. Node payload semantics stay with ValidateNodeData;
// this layer only rejects documents too broken to load.
package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single document validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors represents multiple document validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// NodeDocument is the wire shape of one node; the payload stays raw here.
type NodeDocument struct {
	ID       string          `json:"id" validate:"required,node_id"`
	Type     string          `json:"type" validate:"required,oneof=start end agent if dataStore"`
	Position PositionDoc     `json:"position"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// PositionDoc is the wire shape of a canvas position.
type PositionDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EdgeDocument is the wire shape of one edge.
type EdgeDocument struct {
	ID     string `json:"id" validate:"required"`
	Source string `json:"source" validate:"required,node_id"`
	Target string `json:"target" validate:"required,node_id"`
	Label  string `json:"label,omitempty"`
}

// AgentDocument is the wire shape of one agent definition entry.
type AgentDocument struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Prompt string `json:"prompt,omitempty"`
}

// FlowDocument is the wire shape of a whole flow.
type FlowDocument struct {
	ID               string                   `json:"id" validate:"required"`
	Name             string                   `json:"name" validate:"required,min=1,max=200"`
	Nodes            []NodeDocument           `json:"nodes" validate:"dive"`
	Edges            []EdgeDocument           `json:"edges" validate:"dive"`
	ResponseTemplate string                   `json:"responseTemplate"`
	Agents           map[string]AgentDocument `json:"agents,omitempty" validate:"dive"`
}

// Validate is the shared validator instance with custom rules registered.
var Validate *validator.Validate

var nodeIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func init() {
	Validate = validator.New()

	must(Validate.RegisterValidation("node_id", func(fl validator.FieldLevel) bool {
		return nodeIDRe.MatchString(fl.Field().String())
	}))

	// Report JSON field names instead of Go field names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidateDocument checks a decoded flow document against its struct rules.
func ValidateDocument(doc *FlowDocument) error {
	if doc == nil {
		return ValidationErrors{{Field: "flow", Message: "document is nil"}}
	}
	if err := Validate.Struct(doc); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// ValidateDocumentBytes unmarshals raw JSON into a FlowDocument and validates it.
func ValidateDocumentBytes(data []byte) (*FlowDocument, error) {
	var doc FlowDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding flow document: %w", err)
	}
	if err := ValidateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func formatValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out = append(out, ValidationError{
				Field:   fe.Field(),
				Value:   fe.Value(),
				Message: messageFor(fe),
			})
		}
		return out
	}
	return ValidationErrors{{Field: "document", Message: err.Error()}}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "node_id":
		return "must contain only letters, digits, '_' or '-'"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("length must be >= %s", fe.Param())
	case "max":
		return fmt.Sprintf("length must be <= %s", fe.Param())
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
