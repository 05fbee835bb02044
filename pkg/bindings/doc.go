// Package bindings adapts widget-level interactions to form values.
//
// A binding is configured up front with the shape of the field it drives and
// talks to the engine through the [Form] interface. Misconfigured bindings
// and fields whose value does not have the declared shape fail with a
// KindConfig error from pkg/errors rather than guessing.
package bindings
