package patient

import (
	"errors"
	"slices"

	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// AllowedEmailDomains are the e-mail domains accepted by DomainRestricted.
var AllowedEmailDomains = []string{"piaic.com", "smiu.edu"}

// ProfileSchemes are the URL schemes accepted for linkedin_url on
// Registration.
var ProfileSchemes = []string{"http", "https"}

// EmergencyAge is the age from which Eligibility requires an emergency
// contact.
const EmergencyAge = 60

var (
	ErrUnregisteredEmail = errors.New("unregistered email: only piaic.com and smiu.edu addresses are accepted")
	ErrInvalidAge        = errors.New("invalid age: must be greater than 0 and less than 120")
	ErrEmergencyContact  = errors.New("patients aged 60 and above must have an emergency number")
)

var (
	trimName  = schema.Before(sanitizer.Hook(sanitizer.NormalizeWhitespace))
	trimEmail = schema.Before(sanitizer.Hook(sanitizer.NormalizeEmail))
	placeName = schema.Before(sanitizer.Hook(sanitizer.ToNameCase))

	// phoneNumber keeps the digits of a contact number.
	phoneNumber = schema.String("", schema.Before(sanitizer.Hook(sanitizer.NormalizePhone)))
)

// Basic is the plain patient record. Values are coerced freely and no
// custom rules apply.
var Basic = schema.MustNew("Patient", []schema.Field{
	schema.String("name", trimName),
	schema.Int("age"),
	schema.Bool("married", schema.Optional()),
	schema.URL("linkedin_url"),
	schema.String("email", trimEmail),
	schema.List("allergies", schema.TypeString, schema.Optional()),
	schema.Map("contact_info", schema.TypeString),
}, schema.WithDescription("Patient record without custom rules"))

// Registration is the patient intake form: bounded strict age, typed
// e-mail and URL, documented fields.
var Registration = schema.MustNew("PatientRegistration", []schema.Field{
	schema.String("name",
		trimName,
		schema.MaxLength(30),
		schema.Title("Name of Patient"),
		schema.Description("Name registered in CNIC"),
		schema.Examples("Rengoku"),
	),
	schema.Int("age", schema.Strict(), schema.Gt(0), schema.Lt(110)),
	schema.Bool("married", schema.Default(false), schema.Nullable()),
	schema.URL("linkedin_url", schema.ValidateAs(checkProfileURL)),
	schema.Email("email", trimEmail),
	schema.List("allergies", schema.TypeString, schema.Optional()),
	schema.MapOf("contact_info", phoneNumber,
		schema.Title("Your Phone #"),
		schema.Description("Your contact details"),
	),
}, schema.WithDescription("Patient intake form"))

// DomainRestricted accepts only registered e-mail domains and checks the
// age range with a custom rule.
var DomainRestricted = mustExtend(Basic, "DomainRestrictedPatient", []schema.Field{
	schema.Int("age", schema.ValidateAs(checkAge)),
	schema.String("email", trimEmail, schema.ValidateAs(checkEmailDomain)),
}, schema.WithDescription("Patient record restricted to registered e-mail domains"))

// Eligibility requires an emergency contact for patients aged EmergencyAge
// and above.
var Eligibility = mustExtend(Basic, "EligibilityPatient", []schema.Field{
	schema.Int("age", schema.Gt(0), schema.Lt(120)),
},
	schema.WithDescription("Patient record with age based registration rules"),
	schema.WithRecordValidator("registration_eligibility", checkEmergencyContact),
)

// Vitals adds height in metres and weight in kilograms and derives bmi.
var Vitals = schema.MustNew("PatientVitals", []schema.Field{
	schema.String("name", trimName),
	schema.Int("age", schema.Gt(0), schema.Lt(120)),
	schema.Float("height", schema.Optional(), schema.Description("Height in metres")),
	schema.Float("weight", schema.Optional(), schema.Description("Weight in kilograms")),
	schema.Bool("married", schema.Optional()),
	schema.String("email", trimEmail),
	schema.List("allergies", schema.TypeString, schema.Optional()),
	schema.Map("contact_info", schema.TypeString),
}, schema.WithComputedField(schema.ComputedField{
	Name:        "bmi",
	Type:        schema.TypeNumber,
	Description: "Body mass index rounded to two decimals",
	Compute:     BMI,
}))

// Address is a postal address.
var Address = schema.MustNew("Address", []schema.Field{
	schema.String("city", placeName),
	schema.String("state", placeName),
	schema.Int("zip"),
})

// Resident is a patient with a nested Address.
var Resident = schema.MustNew("Resident", []schema.Field{
	schema.String("name", trimName),
	schema.Int("age"),
	schema.String("gender", schema.Before(sanitizer.Hook(sanitizer.TrimToLower))),
	schema.Nested("address", Address),
})

// BMI computes weight / height² rounded to two decimals. It returns nil
// when either measurement is missing or zero.
func BMI(r *schema.Record) any {
	weight, okWeight := r.FloatOK("weight")
	height, okHeight := r.FloatOK("height")
	if !okWeight || !okHeight {
		return nil
	}
	bmi := sanitizer.SafeDivide(weight, height*height, 0)
	if bmi == 0 {
		return nil
	}
	return sanitizer.RoundToDecimalPlaces(bmi, 2)
}

func checkAge(age int64) (int64, error) {
	if err := validator.Apply(validator.Between("", age, 0, 120)); err != nil {
		return 0, ErrInvalidAge
	}
	return age, nil
}

func checkProfileURL(u string) (string, error) {
	if err := validator.Apply(validator.ValidURLWithScheme("", u, ProfileSchemes)); err != nil {
		return "", err
	}
	return u, nil
}

func checkEmailDomain(email string) (string, error) {
	if slices.Contains(AllowedEmailDomains, sanitizer.ExtractEmailDomain(email)) {
		return email, nil
	}
	return "", ErrUnregisteredEmail
}

func checkEmergencyContact(r *schema.Record) error {
	if r.Int("age") < EmergencyAge {
		return nil
	}
	if _, ok := r.StringMap("contact_info")["emergency"]; !ok {
		return ErrEmergencyContact
	}
	return nil
}

func mustExtend(base *schema.Schema, name string, fields []schema.Field, opts ...schema.Option) *schema.Schema {
	s, err := base.Extend(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
