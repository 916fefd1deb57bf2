package event

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "agenda://schema/event.json"

// ErrMalformedPayload is returned by DecodeInput when the body is not a JSON document.
var ErrMalformedPayload = errors.New("event: malformed payload")

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the compiled JSON Schema describing an event payload.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshal event schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add event schema resource: %w", err)
			return
		}

		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile event schema: %w", schemaErr)
		}
	})

	return compiledSchema, schemaErr
}

// DecodeInput reads one JSON document from r, checks it against the event
// schema and decodes it into an Input. Unknown properties are ignored.
//
// A body that is not JSON yields an error wrapping ErrMalformedPayload; a
// document that breaks the schema yields a *ValidationError.
func DecodeInput(r io.Reader) (Input, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Input{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return Input{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if err := ValidatePayload(doc); err != nil {
		return Input{}, err
	}

	return inputFromDoc(doc)
}

// inputFromDoc copies a schema-valid document into an Input. Numbers keep
// their json.Number form until here, so an integral float such as 3.0 is
// accepted as 3.
func inputFromDoc(doc any) (Input, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return Input{}, fmt.Errorf("%w: not an object", ErrMalformedPayload)
	}

	var in Input
	in.Name, _ = obj["name"].(string)
	in.Date, _ = obj["date"].(string)
	in.Location, _ = obj["location"].(string)
	in.Description, _ = obj["description"].(string)

	if n, ok := obj["people"].(json.Number); ok {
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || f < 0 || f > MaxPeople {
			return Input{}, &ValidationError{Field: "people", Message: "must be a whole number between 0 and 2147483647"}
		}
		in.People = int(f)
	}

	return in, nil
}

// ValidatePayload checks a decoded JSON document against the event schema.
func ValidatePayload(doc any) error {
	schema, err := Schema()
	if err != nil {
		return err
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	return toValidationError(verr)
}

// toValidationError reduces a schema error tree to its first leaf.
func toValidationError(verr *jsonschema.ValidationError) *ValidationError {
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	field := strings.Join(leaf.InstanceLocation, ".")
	msg := "invalid value"

	switch k := leaf.ErrorKind.(type) {
	case *kind.Required:
		if len(k.Missing) > 0 {
			field = joinField(field, k.Missing[0])
		}
		msg = "required"
	case *kind.Type:
		msg = "must be of type " + strings.Join(k.Want, " or ")
	case *kind.Minimum:
		msg = "must not be negative"
	case *kind.Maximum:
		msg = fmt.Sprintf("must not exceed %d", MaxPeople)
	case *kind.MinLength:
		msg = "required"
	case *kind.Pattern:
		msg = "must be a calendar date in YYYY-MM-DD form"
	}

	if field == "" {
		field = "body"
	}
	return &ValidationError{Field: field, Message: msg}
}

func joinField(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
