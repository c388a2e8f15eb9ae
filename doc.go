// Package ffireflect describes the binary layout of types that cross a
// native call boundary.
//
// A type is declared once with its layout annotation and ordered members;
// ffireflect derives a read-only descriptor tree from it holding the size,
// alignment, member names, enum discriminants, array dimensions and pointer
// indirections. Pointers are resolved lazily, so self-referential and
// mutually referential types are described without infinite recursion.
//
// # Architecture Overview
//
//	ffireflect/          Root package with a process-wide default resolver
//	├── descriptor/      Descriptor model, synthesized names, equality, dumps
//	├── decl/            Declaration surface: layouts, members, variants, facts
//	├── resolve/         Layout validation and memoized recursive derivation
//	├── witbridge/       Component Model WIT mapping, Canonical ABI checks
//	├── errors/          Structured error types for debugging
//	└── cmd/inspect/     Descriptor browser
//
// # Quick Start
//
// Declare a Go type laid out like its C equivalent and derive it:
//
//	type Bar struct {
//	    _  structs.HostLayout
//	    F1 int64
//	    F2 int8
//	}
//
//	ffireflect.MustRegister(decl.Bind[Bar](decl.Struct("Bar", decl.Host(),
//	    decl.Field("f1", decl.I64),
//	    decl.Field("f2", decl.I8),
//	)))
//
//	d, err := ffireflect.Of[Bar]()
//	fmt.Print(descriptor.Format(d))
//
// # Error Handling
//
// Failures are definition-time errors from the errors package:
//
//	var e *errors.Error
//	if stderrors.As(err, &e) {
//	    fmt.Printf("%s at %v: %s\n", e.Kind, e.Path, e.Detail)
//	}
package ffireflect
