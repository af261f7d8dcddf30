// Package normalisers provides implementations of the Normaliser
// interface for the document formats law firms upload: PDF, DOCX,
// Markdown and plain text. Each normaliser knows how to extract text
// content from a specific MIME type; the Registry dispatches on MIME
// type with a lossy plain-text fallback for unknown types.
//
// Normalisers are registered with the Registry at startup.
package normalisers
