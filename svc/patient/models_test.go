package patient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
	"github.com/dmitrymomot/schemakit/svc/patient"
)

func patientInput() map[string]any {
	return map[string]any{
		"name":         "Ali",
		"age":          30,
		"linkedin_url": "http://linkedin.com/shamoon-ahmed",
		"email":        "sam@gmail.com",
		"contact_info": map[string]any{"phone": "23456"},
	}
}

func with(base map[string]any, kv ...any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

func validationErrors(t *testing.T, err error) validator.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	verrs := validator.ExtractValidationErrors(err)
	require.NotNil(t, verrs, "expected validation errors, got %v", err)
	return verrs
}

func TestBasic(t *testing.T) {
	t.Parallel()

	t.Run("coerces numeric strings", func(t *testing.T) {
		rec, err := patient.Basic.Validate(with(patientInput(), "age", "30"))
		require.NoError(t, err)
		assert.Equal(t, int64(30), rec.Int("age"))
		assert.True(t, rec.IsNil("married"))
		assert.True(t, rec.IsNil("allergies"))
	})

	t.Run("normalizes name and email", func(t *testing.T) {
		rec, err := patient.Basic.Validate(with(patientInput(), "name", "  Ali   Khan ", "email", " Sam@Gmail.COM "))
		require.NoError(t, err)
		assert.Equal(t, "Ali Khan", rec.String("name"))
		assert.Equal(t, "sam@gmail.com", rec.String("email"))
	})

	t.Run("validation is deterministic", func(t *testing.T) {
		input := with(patientInput(), "age", "x", "linkedin_url", "nope")
		_, first := patient.Basic.Validate(input)
		_, second := patient.Basic.Validate(input)
		assert.Equal(t, first, second)

		ok1, err := patient.Basic.Validate(patientInput())
		require.NoError(t, err)
		ok2, err := patient.Basic.Validate(patientInput())
		require.NoError(t, err)
		assert.Equal(t, ok1.Values(), ok2.Values())
	})
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	t.Run("valid input", func(t *testing.T) {
		rec, err := patient.Registration.Validate(patientInput())
		require.NoError(t, err)
		assert.Equal(t, "Ali", rec.String("name"))
		assert.Equal(t, int64(30), rec.Int("age"))
		assert.False(t, rec.Bool("married"))
		assert.False(t, rec.IsNil("married"))
		assert.Equal(t, map[string]string{"phone": "23456"}, rec.StringMap("contact_info"))
	})

	t.Run("strict age rejects numeric strings", func(t *testing.T) {
		rec, err := patient.Registration.Validate(with(patientInput(), "age", "30"))
		assert.Nil(t, rec)
		verrs := validationErrors(t, err)
		assert.True(t, verrs.HasCode("age", validator.CodeTypeMismatch))
	})

	t.Run("age bounds", func(t *testing.T) {
		for _, age := range []int{0, 110, -5} {
			_, err := patient.Registration.Validate(with(patientInput(), "age", age))
			verrs := validationErrors(t, err)
			assert.True(t, verrs.HasCode("age", validator.CodeOutOfBounds), "age %d", age)
		}
		_, err := patient.Registration.Validate(with(patientInput(), "age", 109))
		assert.NoError(t, err)
	})

	t.Run("name length", func(t *testing.T) {
		_, err := patient.Registration.Validate(with(patientInput(), "name", "Kyojuro Rengoku of the Flame Hashira"))
		verrs := validationErrors(t, err)
		assert.True(t, verrs.HasCode("name", validator.CodeOutOfBounds))
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		input := with(patientInput(), "age", "x", "email", "not-an-email", "linkedin_url", "nope")
		delete(input, "contact_info")

		rec, err := patient.Registration.Validate(input)
		assert.Nil(t, rec)
		verrs := validationErrors(t, err)
		assert.ElementsMatch(t, []string{"age", "linkedin_url", "email", "contact_info"}, verrs.Fields())
		assert.True(t, verrs.HasCode("contact_info", validator.CodeMissing))
		assert.True(t, verrs.HasCode("email", validator.CodeFormatInvalid))
	})

	t.Run("contact numbers keep digits only", func(t *testing.T) {
		rec, err := patient.Registration.Validate(with(patientInput(),
			"contact_info", map[string]any{"phone": "+92 (300) 123-4567", "emergency": "0300-7654321"},
		))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"phone": "923001234567", "emergency": "03007654321"}, rec.StringMap("contact_info"))
	})

	t.Run("linkedin url must use http or https", func(t *testing.T) {
		_, err := patient.Registration.Validate(with(patientInput(), "linkedin_url", "ftp://linkedin.com/shamoon-ahmed"))
		verrs := validationErrors(t, err)
		require.Equal(t, []string{"linkedin_url"}, verrs.Fields())
		got := verrs.GetErrors("linkedin_url")[0]
		assert.Equal(t, validator.CodeFieldValidator, got.Code)
		assert.Equal(t, "validation.url_scheme", got.TranslationKey)
		assert.Equal(t, "must be a valid URL with scheme: http, https", got.Message)

		_, err = patient.Registration.Validate(with(patientInput(), "linkedin_url", "https://linkedin.com/shamoon-ahmed"))
		assert.NoError(t, err)
	})

	t.Run("explicit null married", func(t *testing.T) {
		rec, err := patient.Registration.Validate(with(patientInput(), "married", nil))
		require.NoError(t, err)
		assert.True(t, rec.IsNil("married"))
	})
}

func TestDomainRestricted(t *testing.T) {
	t.Parallel()

	t.Run("registered domains", func(t *testing.T) {
		for _, email := range []string{"ali@piaic.com", "ALI@SMIU.EDU"} {
			rec, err := patient.DomainRestricted.Validate(with(patientInput(), "email", email))
			require.NoError(t, err, email)
			assert.Contains(t, []string{"ali@piaic.com", "ali@smiu.edu"}, rec.String("email"))
		}
	})

	t.Run("unregistered domain and bad age fail together", func(t *testing.T) {
		_, err := patient.DomainRestricted.Validate(with(patientInput(), "age", 130))
		verrs := validationErrors(t, err)

		require.True(t, verrs.HasCode("email", validator.CodeFieldValidator))
		require.True(t, verrs.HasCode("age", validator.CodeFieldValidator))
		assert.Equal(t, []string{patient.ErrUnregisteredEmail.Error()}, verrs.Get("email"))
		assert.Equal(t, []string{patient.ErrInvalidAge.Error()}, verrs.Get("age"))
	})

	t.Run("inherits coercion from the plain record", func(t *testing.T) {
		rec, err := patient.DomainRestricted.Validate(with(patientInput(), "age", "45", "email", "a@piaic.com"))
		require.NoError(t, err)
		assert.Equal(t, int64(45), rec.Int("age"))
	})
}

func TestEligibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		age     int
		contact map[string]any
		wantErr bool
	}{
		{"senior without emergency contact", 65, map[string]any{"phone": "1"}, true},
		{"senior with emergency contact", 65, map[string]any{"phone": "1", "emergency": "2"}, false},
		{"exactly sixty", 60, map[string]any{"phone": "1"}, true},
		{"younger patient", 59, map[string]any{"phone": "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := patient.Eligibility.Validate(with(patientInput(), "age", tt.age, "contact_info", tt.contact))
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotNil(t, rec)
				return
			}
			assert.Nil(t, rec)
			verrs := validationErrors(t, err)
			require.Len(t, verrs, 1)
			assert.Equal(t, validator.CodeRecordValidator, verrs[0].Code)
			assert.Empty(t, verrs[0].Field)
			assert.Equal(t, patient.ErrEmergencyContact.Error(), verrs[0].Message)
		})
	}

	t.Run("record rule waits for valid fields", func(t *testing.T) {
		_, err := patient.Eligibility.Validate(with(patientInput(), "age", 130, "contact_info", map[string]any{"phone": "1"}))
		verrs := validationErrors(t, err)
		assert.True(t, verrs.HasCode("age", validator.CodeOutOfBounds))
		assert.False(t, verrs.HasCode("", validator.CodeRecordValidator))
	})

	t.Run("bounds", func(t *testing.T) {
		young := map[string]any{"phone": "1", "emergency": "2"}
		_, err := patient.Eligibility.Validate(with(patientInput(), "age", 119, "contact_info", young))
		assert.NoError(t, err)
		for _, age := range []int{120, 0, -5} {
			_, err := patient.Eligibility.Validate(with(patientInput(), "age", age, "contact_info", young))
			verrs := validationErrors(t, err)
			assert.True(t, verrs.HasCode("age", validator.CodeOutOfBounds), "age %d", age)
		}
	})
}

func TestVitals(t *testing.T) {
	t.Parallel()

	input := func(kv ...any) map[string]any {
		base := map[string]any{
			"name":         "Ali",
			"age":          60,
			"email":        "sam@gmail.com",
			"contact_info": map[string]any{"phone": "22334455", "emergency": "22222"},
		}
		return with(base, kv...)
	}

	t.Run("computes bmi", func(t *testing.T) {
		rec, err := patient.Vitals.Validate(input("height", 1.72, "weight", 55))
		require.NoError(t, err)

		bmi, ok := rec.FloatOK("bmi")
		require.True(t, ok)
		assert.InDelta(t, 18.59, bmi, 1e-9)

		out, err := rec.Dump()
		require.NoError(t, err)
		assert.Contains(t, out, "bmi")
	})

	t.Run("bmi is nil without both measurements", func(t *testing.T) {
		for _, in := range []map[string]any{input(), input("height", 1.72), input("weight", 55), input("height", 0, "weight", 55), input("height", 1.72, "weight", 0)} {
			rec, err := patient.Vitals.Validate(in)
			require.NoError(t, err)
			assert.True(t, rec.IsNil("bmi"))
		}
	})

	t.Run("bmi in input is ignored", func(t *testing.T) {
		rec, err := patient.Vitals.Validate(input("height", 2.0, "weight", 80, "bmi", 99.9))
		require.NoError(t, err)
		assert.InDelta(t, 20.0, rec.Float("bmi"), 1e-9)
	})
}

func TestResident(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"name":    "Ali",
		"age":     25,
		"gender":  "Male",
		"address": map[string]any{"city": "Karachi", "state": "Sindh", "zip": 75850},
	}

	t.Run("nested from mapping", func(t *testing.T) {
		rec, err := patient.Resident.Validate(raw)
		require.NoError(t, err)
		assert.Equal(t, "male", rec.String("gender"))
		assert.Equal(t, int64(75850), rec.Int("address.zip"))
		assert.Equal(t, patient.Address, rec.Record("address").Schema())
	})

	t.Run("address names are name-cased", func(t *testing.T) {
		rec, err := patient.Resident.Validate(with(raw, "address", map[string]any{"city": "  karachi ", "state": "SINDH", "zip": 75850}))
		require.NoError(t, err)
		assert.Equal(t, "Karachi", rec.String("address.city"))
		assert.Equal(t, "Sindh", rec.String("address.state"))
	})

	t.Run("nested from validated record", func(t *testing.T) {
		addr := patient.Address.MustValidate(map[string]any{"city": "Karachi", "state": "Sindh", "zip": 76666})
		rec, err := patient.Resident.Validate(with(raw, "address", addr))
		require.NoError(t, err)
		assert.Equal(t, int64(76666), rec.Int("address.zip"))
	})

	t.Run("nested error path", func(t *testing.T) {
		_, err := patient.Resident.Validate(with(raw, "address", map[string]any{"city": "Karachi", "state": "Sindh", "zip": "abc"}))
		verrs := validationErrors(t, err)
		assert.Equal(t, []string{"address.zip"}, verrs.Fields())
		assert.True(t, verrs.HasCode("address.zip", validator.CodeTypeMismatch))
	})

	t.Run("serialization", func(t *testing.T) {
		rec := patient.Resident.MustValidate(raw)

		out, err := rec.Dump(schema.Include("name", "age"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Ali", "age": int64(25)}, out)

		out, err = rec.Dump(schema.Exclude("age"))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"name", "gender", "address"}, keys(out))

		out, err = rec.Dump(schema.ExcludeNested(schema.Selector{"name": nil, "address": {"state": nil}}))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"age":     int64(25),
			"gender":  "male",
			"address": map[string]any{"city": "Karachi", "zip": int64(75850)},
		}, out)

		data, err := rec.DumpJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Ali","age":25,"gender":"male","address":{"city":"Karachi","state":"Sindh","zip":75850}}`, string(data))
	})
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
