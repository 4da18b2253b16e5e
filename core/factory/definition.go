package factory

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Definition resolves an implementation name to a concrete product type and
// its declared constructors.
type Definition struct {
	name    string
	product reflect.Type
	ctors   []constructor
}

type constructor struct {
	params []reflect.Type
	fn     reflect.Value
	hasErr bool
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// NewDefinition builds a definition from constructor functions. See
// Scope.Define for the accepted constructor shapes.
func NewDefinition(name string, constructors ...any) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("factory: definition name must not be empty")
	}
	if len(constructors) == 0 {
		return nil, fmt.Errorf("factory: definition %q needs at least one constructor", name)
	}
	def := &Definition{name: name}
	for _, fn := range constructors {
		c, product, err := newConstructor(name, fn)
		if err != nil {
			return nil, err
		}
		if def.product == nil {
			def.product = product
		} else if def.product != product {
			return nil, fmt.Errorf("factory: definition %q constructors disagree on product type: %s vs %s",
				name, def.product, product)
		}
		def.ctors = append(def.ctors, c)
	}
	return def, nil
}

// Name returns the registered implementation name.
func (d *Definition) Name() string { return d.name }

// Product returns the concrete type the constructors produce.
func (d *Definition) Product() reflect.Type { return d.product }

func newConstructor(name string, fn any) (constructor, reflect.Type, error) {
	if fn == nil {
		return constructor{}, nil, fmt.Errorf("factory: nil constructor for %q", name)
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return constructor{}, nil, fmt.Errorf("factory: constructor for %q must be a function, got %s", name, t)
	}
	if t.IsVariadic() {
		return constructor{}, nil, fmt.Errorf("factory: constructor for %q must not be variadic", name)
	}
	var hasErr bool
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errType {
			return constructor{}, nil, fmt.Errorf("factory: constructor for %q second result must be error, got %s", name, t.Out(1))
		}
		hasErr = true
	default:
		return constructor{}, nil, fmt.Errorf("factory: constructor for %q must return the product and an optional error", name)
	}
	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}
	return constructor{params: params, fn: v, hasErr: hasErr}, t.Out(0), nil
}

// construct invokes a constructor with pre-bound arguments. Panics inside the
// constructor are converted into errors so they can be routed through the
// failure handler like any other instantiation failure.
func (d *Definition) construct(c constructor, args []reflect.Value) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("factory: constructor for %q panicked: %v", d.name, rec)
		}
	}()
	results := c.fn.Call(args)
	if c.hasErr && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

// Decode fills out the provided struct from a raw configuration map using
// json tags. Constructors taking a map[string]any can use it to decode their
// settings into typed structs.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
