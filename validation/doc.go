// Package validation provides request validation helpers.
//
// Two styles are supported: a fluent Validator for hand-rolled checks on
// request fields, and struct-tag validation via go-playground/validator for
// bound request bodies. Both produce errors.Validation AppErrors carrying
// per-field details, so handlers can return them directly.
package validation
