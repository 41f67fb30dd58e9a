// Package registry provides the central "glue" for the module system.
//
// The Registry stores mappings between the string identifiers used in grid
// files (e.g. "OnEventPrint", "socketio") and the compiled Go functions that
// implement them. During startup the registry is populated by the module
// packages and then validated against the loaded configuration, so that a
// grid referencing an unknown handler or feed kind fails before anything
// connects.
package registry
