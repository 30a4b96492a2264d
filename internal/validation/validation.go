// Package validation binds incoming requests and turns validation
// failures into field level errors.
package validation
