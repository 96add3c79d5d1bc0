// Package requests holds the form payloads of every resource.
//
// Fields are bound from `form` tags, cleaned by `sanitize` tags and then
// checked against `validate` tags. Rules that depend on more than one
// field live in a Validate method.
package requests
