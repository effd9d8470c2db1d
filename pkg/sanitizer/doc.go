// Package sanitizer normalizes raw input before it is validated.
//
// Transforms are plain functions (Trim, NormalizeEmail, ToNameCase) that can
// be chained with Apply or stored with Compose. Hook turns a chain of string
// transforms into a before hook for schema fields:
//
//	schema.Email("email", schema.Before(sanitizer.Hook(sanitizer.NormalizeEmail)))
//
// Numeric helpers round and clamp derived values such as computed fields.
package sanitizer
