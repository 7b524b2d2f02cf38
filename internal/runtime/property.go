package runtime

// PropertyKey identifies an object property: either a string (which
// may additionally be an array-index string, e.g. "0", "1") or a
// Symbol (spec.md §4.4, "ownKeys ... integer-index keys ... then
// string keys ... then symbol keys").
type PropertyKey struct {
	str      string
	sym      *Symbol
	isSymbol bool
}

// StringKey builds a string-valued PropertyKey.
func StringKey(s string) PropertyKey { return PropertyKey{str: s} }

// SymbolKey builds a Symbol-valued PropertyKey.
func SymbolKey(s *Symbol) PropertyKey { return PropertyKey{sym: s, isSymbol: true} }

// IsSymbol reports whether the key is a Symbol rather than a string.
func (k PropertyKey) IsSymbol() bool { return k.isSymbol }

// String returns the string form of a string key, or the Symbol's own
// String form for a symbol key.
func (k PropertyKey) String() string {
	if k.isSymbol {
		return k.sym.String()
	}
	return k.str
}

// Symbol returns the underlying Symbol of a symbol key, or nil.
func (k PropertyKey) Symbol() *Symbol { return k.sym }

// arrayIndex reports whether the key is a canonical array-index string
// ("0", "1", "2", ... with no leading zero except "0" itself) and
// returns its numeric value.
func (k PropertyKey) arrayIndex() (uint32, bool) {
	if k.isSymbol || k.str == "" {
		return 0, false
	}
	s := k.str
	if s == "0" {
		return 0, true
	}
	if s[0] == '0' {
		return 0, false
	}
	var n uint64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + uint64(r-'0')
		if n > 0xFFFFFFFE {
			return 0, false
		}
	}
	return uint32(n), true
}

// PropertyDescriptor is a data or accessor property record (spec.md
// §4.4): a data property carries Value; an accessor property carries
// Get/Set (either may be nil). Writable is meaningless for an accessor
// property.
type PropertyDescriptor struct {
	Value        Value
	Get          *Object
	Set          *Object
	Writable     bool
	Enumerable   bool
	Configurable bool
	IsAccessor   bool
}

// DataProperty builds a writable, enumerable, configurable data
// property -- the attributes ordinary assignment produces.
func DataProperty(v Value) *PropertyDescriptor {
	return &PropertyDescriptor{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// NonEnumerableData builds a data property that does not show up in
// for-in/Object.keys, matching how built-in methods are installed
// (spec.md §4.7).
func NonEnumerableData(v Value) *PropertyDescriptor {
	return &PropertyDescriptor{Value: v, Writable: true, Enumerable: false, Configurable: true}
}

// AccessorProperty builds an accessor property from get/set functions,
// either of which may be nil.
func AccessorProperty(get, set *Object, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{Get: get, Set: set, IsAccessor: true, Enumerable: enumerable, Configurable: configurable}
}
