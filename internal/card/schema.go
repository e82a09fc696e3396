package card

// InputSpec declares one input of a card type: its key, a display
// label, and the default used when the stored slot is absent or
// non-numeric.
type InputSpec struct {
	Key     string
	Label   string
	Default float64
}

// Schema is an ordered list of input declarations. Order matters: the
// resolver walks declared keys in declaration order so resolution is
// deterministic.
type Schema []InputSpec

// Merge overlays dynamic entries onto a static schema. Entries with a
// key already declared statically replace that entry in place; new
// keys are appended in the dynamic schema's order.
func (s Schema) Merge(dynamic Schema) Schema {
	if len(dynamic) == 0 {
		return s
	}
	merged := make(Schema, len(s), len(s)+len(dynamic))
	copy(merged, s)

	index := make(map[string]int, len(merged))
	for i, spec := range merged {
		index[spec.Key] = i
	}
	for _, spec := range dynamic {
		if i, ok := index[spec.Key]; ok {
			merged[i] = spec
		} else {
			index[spec.Key] = len(merged)
			merged = append(merged, spec)
		}
	}
	return merged
}

// Declares reports whether the schema declares the given key.
func (s Schema) Declares(key string) bool {
	for _, spec := range s {
		if spec.Key == key {
			return true
		}
	}
	return false
}

// DefaultFor returns the declared default for key, or 0 if the key is
// not declared.
func (s Schema) DefaultFor(key string) float64 {
	for _, spec := range s {
		if spec.Key == key {
			return spec.Default
		}
	}
	return 0
}
