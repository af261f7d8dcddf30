// Package legal provides French legal-domain text intelligence: entity
// recognition for statute, law and case references, claim detection for
// the citation gate, query expansion over a fixed synonym table, and
// glossary-based FR/EN query translation.
//
// Everything in this package is pure pattern matching over strings.
// Tables are fixed at compile time; there is no model dependency and
// no mutable state, so all functions are safe for concurrent use.
package legal
