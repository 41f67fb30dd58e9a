// Package hcl implements the HCL loader: it discovers .hcl grid files,
// parses them, and translates the bridge/feed/on blocks into the
// format-agnostic config model.
package hcl
