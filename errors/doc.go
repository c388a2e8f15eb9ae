// Package errors provides structured error types for the ffi-reflect library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: offending type, member, member path and cause chain.
//
// Every Kind raised during PhaseDefine is a definition-time failure: it rejects an
// ill-formed type declaration before any descriptor exists. Fix the declaration;
// retrying will produce the same error.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDefine, errors.KindUnsupportedMemberType).
//		Type("Baz").
//		Member("names").
//		Path("Baz", "names").
//		Detail("[]string has no fixed layout").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.EmptyComposite("Unit", "struct")
//	err := errors.MissingDiscriminant("Color", "Red")
//
// All errors implement the standard error interface and support errors.Is/As.
// A target without a Phase matches any phase:
//
//	errors.Is(err, &errors.Error{Kind: errors.KindEmptyComposite})
package errors
