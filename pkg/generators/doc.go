// Package generators implements the fit/transform lifecycle shared by every
// kestrel feature generator.
//
// # Lifecycle
//
// A Generator starts unfit. FitTransform runs exactly once: it resolves the
// input feature metadata and the input features, calls the strategy's
// FitTransform hook on the selected columns, applies the configured name
// prefix and suffix, and records the output features and their metadata. After
// that the generator is fit and Transform can be called any number of times to
// replay the learned selection and renaming on new tables.
//
//	gen := generators.NewIdentity(generators.WithNamePrefix("id_"))
//	train, err := gen.FitTransform(trainTable, labels)
//	if err != nil {
//	    return err
//	}
//	test, err := gen.Transform(testTable)
//
// # Strategies
//
// The per-generator behavior lives behind the Strategy interface. Strategies
// are registered by name so a saved snapshot can be loaded back into a working
// generator:
//
//	gen, err := generators.Load("identity.kestrel.yml")
//
// A Generator is not safe for concurrent use.
package generators
