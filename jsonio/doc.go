// Package jsonio is the public entry point for the identity-preserving
// JSON dialect implemented by this module: Encode/Decode wrap the
// parser, resolver, and writer packages behind a small functional-option
// API, the same shape section 2 of the specification describes for the
// top-level library surface.
package jsonio
