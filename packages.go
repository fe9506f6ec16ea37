package seta

// Invocable is the fixed signature every registered object implements.
// Arguments arrive as the raw text tokens of the `call` instruction; results
// and failures flow back through the runtime (namespace writes, console
// output, diagnostics) rather than return values.
type Invocable func(rt *Runtime, args []string)

// Object is a named invocable together with its declared argument shape.
// MaxArgs < 0 means variadic. The dispatcher checks the shape once at the
// call site before invoking.
type Object struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      Invocable
}

// Accepts reports whether n arguments satisfy the declared shape.
func (o *Object) Accepts(n int) bool {
	if n < o.MinArgs {
		return false
	}
	return o.MaxArgs < 0 || n <= o.MaxArgs
}

// Package is a named collection of invocable objects.
type Package struct {
	Name string
	pool map[string]*Object
}

func NewPackage(name string) *Package {
	return &Package{Name: name, pool: make(map[string]*Object)}
}

// Register binds an object under key. Returns whether the key already
// existed (the previous binding is replaced either way).
func (p *Package) Register(key string, minArgs, maxArgs int, fn Invocable) bool {
	_, existed := p.pool[key]
	p.pool[key] = &Object{Name: key, MinArgs: minArgs, MaxArgs: maxArgs, Fn: fn}
	return existed
}

// Lookup returns the object bound to key, or nil.
func (p *Package) Lookup(key string) *Object {
	return p.pool[key]
}

// Remove unbinds key. Returns whether a binding was removed.
func (p *Package) Remove(key string) bool {
	if _, ok := p.pool[key]; !ok {
		return false
	}
	delete(p.pool, key)
	return true
}
