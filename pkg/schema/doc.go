// Package schema provides a rule-based [form.Schema].
//
// An [Object] is a list of fields, each carrying rules that are checked in
// declaration order. Validate reports every failing rule of every field;
// ValidateAt reports the failures of one field path.
//
//	signup := schema.New(
//	    schema.NewField("email", schema.Required(), schema.Email()),
//	    schema.NewField("name", schema.Required(), schema.MaxLength(40)),
//	    schema.NewField("address").Nested(schema.New(
//	        schema.NewField("city", schema.Required()),
//	    )),
//	)
//
// Schemas can also be loaded from YAML documents with [Load] and [LoadFile].
package schema
