package factory

import "reflect"

// selectConstructor picks the constructor to invoke for a definition. The
// zero-argument constructor wins whenever one is declared. Otherwise the
// first declared constructor whose full parameter list is present in the
// arguments is used, binding values positionally by type.
func selectConstructor(def *Definition, args *Arguments) (constructor, []reflect.Value, error) {
	for _, c := range def.ctors {
		if len(c.params) == 0 {
			return c, nil, nil
		}
	}
	for _, c := range def.ctors {
		bound := make([]reflect.Value, 0, len(c.params))
		satisfied := true
		for _, p := range c.params {
			v, ok := args.Get(p)
			if !ok {
				satisfied = false
				break
			}
			bound = append(bound, reflect.ValueOf(v))
		}
		if satisfied {
			return c, bound, nil
		}
	}
	return constructor{}, nil, &NoSuchConstructorError{Implementation: def.name}
}
