// Package validator provides small, generic validation rules and the error
// types shared by the schema engine.
//
// A Rule pairs a Check function with translation-friendly error metadata.
// Apply evaluates rules and aggregates failures into ValidationErrors, which
// implements error. Collect does the same without wrapping the result.
//
// Every ValidationError carries a dotted field path ("address.zip"), a Code
// classifying the failure, a human readable Message, the offending Value and
// a TranslationKey with TranslationValues for localized output.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("name", name),
//	    validator.MaxLenString("name", name, 30),
//	    validator.GreaterThan("age", age, 0),
//	    validator.ValidEmail("email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for field, errs := range verrs.ByField() {
//	        // ...
//	    }
//	}
//
// Nested results are combined with Merge, which prefixes their paths.
//
// Rules are stateless and safe for concurrent use.
package validator
