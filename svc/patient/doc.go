// Package patient declares the patient record schemas used by the
// patientctl tool: a plain record, an intake form with bounded fields, an
// e-mail domain allow-list, an age based eligibility rule, vitals with a
// computed body mass index and a resident with a nested address.
//
// Schemas are package level values and safe for concurrent use:
//
//	rec, err := patient.Registration.Validate(map[string]any{
//		"name":         "Ali",
//		"age":          30,
//		"linkedin_url": "http://linkedin.com/shamoon-ahmed",
//		"email":        "sam@gmail.com",
//		"contact_info": map[string]any{"phone": "23456"},
//	})
package patient
