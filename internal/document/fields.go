// internal/document/fields.go
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"loan-workers/internal/models"
)

var ErrMalformedFields = errors.New("MALFORMED_EXTRACTED_FIELDS")

// fieldSchemas describes the stored shape of each document type's fields.
// Keys are not required so rows written before a field existed still decode.
var fieldSchemas = map[models.DocumentType]*gojsonschema.Schema{
	models.DocumentTypeAadhaar: mustSchema(stringProps(
		models.FieldName, models.FieldDOB, models.FieldGender,
		models.FieldAadhaarNumber, models.FieldAddress,
	)),
	models.DocumentTypePAN: mustSchema(stringProps(
		models.FieldName, models.FieldFatherName, models.FieldDOB,
		models.FieldPANNumber, models.FieldAddress,
	)),
	models.DocumentTypeIncomeProof: mustSchema(withProp(
		stringProps(models.FieldEmploymentType, models.FieldEmployerName, models.FieldDocumentType),
		models.FieldMonthlyIncome, map[string]interface{}{"type": "number", "minimum": 0},
	)),
	models.DocumentTypeBankStatement: mustSchema(stringProps()),
	models.DocumentTypeOther:         mustSchema(stringProps()),
}

// EncodeFields serializes fields into the text stored in documents.extracted_data.
func EncodeFields(fields models.ExtractedFields) (string, error) {
	if fields == nil {
		return "{}", nil
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedFields, err)
	}
	return string(b), nil
}

// DecodeFields parses stored fields and checks them against docType's shape.
func DecodeFields(docType models.DocumentType, raw string) (models.ExtractedFields, error) {
	schema, ok := fieldSchemas[docType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown document type %q", ErrMalformedFields, docType)
	}

	var fields models.ExtractedFields
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFields, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedFields)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]interface{}(fields)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFields, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedFields, strings.Join(errs, "; "))
	}

	return fields, nil
}

func stringProps(names ...string) map[string]interface{} {
	props := make(map[string]interface{}, len(names))
	for _, n := range names {
		props[n] = map[string]interface{}{"type": "string"}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
}

func withProp(schema map[string]interface{}, name string, prop map[string]interface{}) map[string]interface{} {
	schema["properties"].(map[string]interface{})[name] = prop
	return schema
}

func mustSchema(schemaMap map[string]interface{}) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
	if err != nil {
		panic(fmt.Sprintf("document: invalid field schema: %v", err))
	}
	return s
}
