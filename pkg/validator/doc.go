// Package validator provides composable validation rules.
//
// A Rule pairs a check with the ValidationError reported when it fails.
// Apply runs rules and collects every failure into ValidationErrors, which
// implements error and can be mapped to a field → messages body with Map.
//
//	err := validator.Apply(
//		validator.RequiredString("city", in.City),
//		validator.MaxLenString("city", in.City, 100),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		// respond with errs.Map()
//	}
package validator
