package ircode

// Binding ties one button name to its code.
type Binding struct {
	Key  Key    `json:"key" yaml:"key"`
	Code Code   `json:"code" yaml:"code"`
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
	// Uncertain marks codes that were never confirmed against a physical remote.
	Uncertain bool `json:"uncertain,omitempty" yaml:"uncertain,omitempty"`
	// Previous lists codes once noted for the button and since retired.
	// They are kept for reference only: lookups and validation ignore them.
	Previous []Code `json:"previous,omitempty" yaml:"previous,omitempty"`
}

// Table is an immutable set of bindings for one remote revision.
// When a key or code is declared twice the first declaration wins for lookups;
// Validate reports the conflict.
type Table struct {
	name        string
	description string
	bindings    []Binding
	byKey       map[Key]int
	byCode      map[Code]int
}

// NewTable indexes the bindings in declaration order.
func NewTable(name, description string, bindings []Binding) *Table {
	t := &Table{
		name:        name,
		description: description,
		bindings:    make([]Binding, len(bindings)),
		byKey:       make(map[Key]int, len(bindings)),
		byCode:      make(map[Code]int, len(bindings)),
	}
	for i, b := range bindings {
		b.Previous = append([]Code(nil), b.Previous...)
		t.bindings[i] = b
		if _, ok := t.byKey[b.Key]; !ok {
			t.byKey[b.Key] = i
		}
		if _, ok := t.byCode[b.Code]; !ok {
			t.byCode[b.Code] = i
		}
	}
	return t
}

func (t *Table) Name() string        { return t.name }
func (t *Table) Description() string { return t.description }
func (t *Table) Len() int            { return len(t.bindings) }

// Bindings returns a copy of the bindings in declaration order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Lookup resolves a received code to its binding.
func (t *Table) Lookup(c Code) (Binding, bool) {
	i, ok := t.byCode[c]
	if !ok {
		return Binding{}, false
	}
	return t.bindings[i], true
}

// Binding returns the binding declared for key.
func (t *Table) Binding(key Key) (Binding, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Binding{}, false
	}
	return t.bindings[i], true
}

// CodeFor returns the primary code for key.
func (t *Table) CodeFor(key Key) (Code, bool) {
	b, ok := t.Binding(key)
	return b.Code, ok
}

// Validate checks that every key is defined once, that no code is shared by
// two keys, and that every code is a 24-bit NEC value. It returns nil or a
// *ValidationError listing every problem found.
func (t *Table) Validate() error {
	var problems []Problem
	keys := make(map[Key]Code, len(t.bindings))
	codes := make(map[Code]Key, len(t.bindings))

	for _, b := range t.bindings {
		if first, ok := keys[b.Key]; ok {
			problems = append(problems, Problem{Err: ErrDuplicateKey, Key: b.Key, Code: b.Code, Other: first.String()})
		} else {
			keys[b.Key] = b.Code
		}

		c := b.Code
		if !c.InRange() {
			problems = append(problems, Problem{Err: ErrOutOfRange, Key: b.Key, Code: c})
			continue
		}
		if !c.Complemented() {
			problems = append(problems, Problem{Err: ErrNotComplement, Key: b.Key, Code: c})
		}
		if owner, ok := codes[c]; ok && owner != b.Key {
			problems = append(problems, Problem{Err: ErrDuplicateCode, Key: b.Key, Code: c, Other: string(owner)})
			continue
		}
		codes[c] = b.Key
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Table: t.name, Problems: problems}
}
