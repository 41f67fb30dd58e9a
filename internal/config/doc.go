// Package config defines the format-agnostic model of a grid file: which
// bridges exist, which feeds drive them, and which handlers are bound to
// which event names. Loaders (see internal/hcl) translate a concrete config
// format into this model; the rest of the application never sees HCL syntax
// beyond the retained feed bodies.
package config
