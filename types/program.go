package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/sway-abi/errors"
)

// Program is the resolved interface of one compiled Sway program: its named
// types, its functions and the log-id registry used to decode its logs.
type Program struct {
	types     map[string]*Descriptor
	functions map[string]*Function
	logs      map[uint64]*Descriptor

	Functions     []*Function
	Configurables []Configurable
	LogIDs        []uint64
}

// Function is a callable entry point of a program.
type Function struct {
	Output *Descriptor
	Name   string
	Inputs []Field
}

// Configurable is a constant patched into the program bytecode at Offset.
type Configurable struct {
	Type   *Descriptor
	Name   string
	Offset uint64
}

// Type returns the named struct or enum. Both the full path
// ("std::option::Option") and the last path segment ("Option") resolve.
func (p *Program) Type(name string) (*Descriptor, bool) {
	d, ok := p.types[name]
	return d, ok
}

// LogType returns the descriptor registered for a log id.
func (p *Program) LogType(id uint64) (*Descriptor, bool) {
	d, ok := p.logs[id]
	return d, ok
}

func (p *Program) Function(name string) (*Function, bool) {
	f, ok := p.functions[name]
	return f, ok
}

// NewProgram assembles a program from already built descriptors. It is the
// programmatic counterpart of ParseProgram.
func NewProgram(functions []*Function, logs map[uint64]*Descriptor) (*Program, error) {
	p := &Program{
		types:     make(map[string]*Descriptor),
		functions: make(map[string]*Function, len(functions)),
		logs:      make(map[uint64]*Descriptor, len(logs)),
	}
	for _, fn := range functions {
		if _, dup := p.functions[fn.Name]; dup {
			return nil, errors.DuplicateMember(errors.PhaseCompile, "functions", fn.Name)
		}
		for _, in := range fn.Inputs {
			if err := p.register(in.Type); err != nil {
				return nil, err
			}
		}
		if fn.Output != nil {
			if err := p.register(fn.Output); err != nil {
				return nil, err
			}
		}
		p.functions[fn.Name] = fn
		p.Functions = append(p.Functions, fn)
	}
	for id, d := range logs {
		if err := p.register(d); err != nil {
			return nil, err
		}
		p.logs[id] = d
		p.LogIDs = append(p.LogIDs, id)
	}
	slices.Sort(p.LogIDs)
	return p, nil
}

func (p *Program) register(d *Descriptor) error {
	if err := Validate(d); err != nil {
		return err
	}
	p.collect(d, map[*Descriptor]bool{})
	return nil
}

func (p *Program) collect(d *Descriptor, seen map[*Descriptor]bool) {
	if d == nil || seen[d] {
		return
	}
	seen[d] = true
	switch d.Kind {
	case KindStruct, KindEnum:
		if _, ok := p.types[d.Name]; !ok {
			p.types[d.Name] = d
		}
		if i := strings.LastIndex(d.Name, "::"); i >= 0 {
			if _, ok := p.types[d.Name[i+2:]]; !ok {
				p.types[d.Name[i+2:]] = d
			}
		}
		for _, f := range d.Fields {
			p.collect(f.Type, seen)
		}
		for _, v := range d.Variants {
			p.collect(v.Type, seen)
		}
	case KindTuple:
		for _, f := range d.Fields {
			p.collect(f.Type, seen)
		}
	case KindArray, KindVector:
		p.collect(d.Elem, seen)
	}
}

// Signature renders the selector input, e.g. "transfer(u64,b256)".
func (f *Function) Signature() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, in := range f.Inputs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(in.Type.Signature())
	}
	b.WriteByte(')')
	return b.String()
}

// Selector returns the one-word function selector: the first four bytes of
// sha256(Signature()) right-aligned in a zeroed word.
func (f *Function) Selector() [8]byte {
	sum := sha256.Sum256([]byte(f.Signature()))
	var sel [8]byte
	copy(sel[4:], sum[:4])
	return sel
}

// Params returns the input types as a tuple, the shape arguments are
// encoded in.
func (f *Function) Params() *Descriptor {
	elems := make([]*Descriptor, len(f.Inputs))
	for i, in := range f.Inputs {
		elems[i] = in.Type
	}
	return Tuple(elems...)
}

type abiTypeApplication struct {
	Name          string               `json:"name"`
	TypeArguments []abiTypeApplication `json:"typeArguments"`
	Type          int                  `json:"type"`
}

type abiTypeDecl struct {
	Type           string               `json:"type"`
	Components     []abiTypeApplication `json:"components"`
	TypeParameters []int                `json:"typeParameters"`
	TypeID         int                  `json:"typeId"`
}

type abiFunction struct {
	Name   string               `json:"name"`
	Inputs []abiTypeApplication `json:"inputs"`
	Output abiTypeApplication   `json:"output"`
}

type abiLoggedType struct {
	LogID      json.RawMessage    `json:"logId"`
	LoggedType abiTypeApplication `json:"loggedType"`
}

type abiConfigurable struct {
	Name             string             `json:"name"`
	ConfigurableType abiTypeApplication `json:"configurableType"`
	Offset           uint64             `json:"offset"`
}

type abiDocument struct {
	Types         []abiTypeDecl     `json:"types"`
	Functions     []abiFunction     `json:"functions"`
	LoggedTypes   []abiLoggedType   `json:"loggedTypes"`
	Configurables []abiConfigurable `json:"configurables"`
}

var (
	arrayPattern = regexp.MustCompile(`^\[_; (\d+)\]$`)
	strPattern   = regexp.MustCompile(`^str\[(\d+)\]$`)
	tuplePattern = regexp.MustCompile(`^\((_, )*_\)$`)
)

// ParseProgram loads a JSON program ABI. Generic types are instantiated per
// use site; Vec, Bytes and String map to the dynamic kinds.
func ParseProgram(data []byte) (*Program, error) {
	var doc abiDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.ParseFailed("program abi", err)
	}

	r := &resolver{
		decls: make(map[int]*abiTypeDecl, len(doc.Types)),
		cache: make(map[string]*Descriptor),
	}
	for i := range doc.Types {
		decl := &doc.Types[i]
		if _, dup := r.decls[decl.TypeID]; dup {
			return nil, errors.DuplicateMember(errors.PhaseParse, "types", strconv.Itoa(decl.TypeID))
		}
		r.decls[decl.TypeID] = decl
	}

	functions := make([]*Function, 0, len(doc.Functions))
	for _, fn := range doc.Functions {
		f := &Function{Name: fn.Name, Inputs: make([]Field, 0, len(fn.Inputs))}
		for _, in := range fn.Inputs {
			d, err := r.resolve(in, nil, []string{fn.Name, in.Name})
			if err != nil {
				return nil, err
			}
			f.Inputs = append(f.Inputs, Field{Name: in.Name, Type: d})
		}
		out, err := r.resolve(fn.Output, nil, []string{fn.Name, "output"})
		if err != nil {
			return nil, err
		}
		f.Output = out
		functions = append(functions, f)
	}

	logs := make(map[uint64]*Descriptor, len(doc.LoggedTypes))
	for _, lt := range doc.LoggedTypes {
		id, err := parseLogID(lt.LogID)
		if err != nil {
			return nil, err
		}
		d, err := r.resolve(lt.LoggedType, nil, []string{"loggedTypes", strconv.FormatUint(id, 10)})
		if err != nil {
			return nil, err
		}
		logs[id] = d
	}

	p, err := NewProgram(functions, logs)
	if err != nil {
		return nil, err
	}

	for _, c := range doc.Configurables {
		d, err := r.resolve(c.ConfigurableType, nil, []string{"configurables", c.Name})
		if err != nil {
			return nil, err
		}
		if err := p.register(d); err != nil {
			return nil, err
		}
		p.Configurables = append(p.Configurables, Configurable{Name: c.Name, Type: d, Offset: c.Offset})
	}

	// Non-generic named types that no function or log mentions still resolve by name.
	for _, decl := range doc.Types {
		if len(decl.TypeParameters) > 0 {
			continue
		}
		if !strings.HasPrefix(decl.Type, "struct ") && !strings.HasPrefix(decl.Type, "enum ") {
			continue
		}
		d, err := r.resolve(abiTypeApplication{Type: decl.TypeID}, nil, []string{decl.Type})
		if err != nil {
			return nil, err
		}
		if err := p.register(d); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func parseLogID(raw json.RawMessage) (uint64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		id, perr := strconv.ParseUint(s, 10, 64)
		if perr != nil {
			return 0, errors.ParseFailed("log id "+strconv.Quote(s), perr)
		}
		return id, nil
	}
	var id uint64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, errors.ParseFailed("log id "+string(raw), err)
	}
	return id, nil
}

type resolver struct {
	decls map[int]*abiTypeDecl
	cache map[string]*Descriptor
}

func (r *resolver) resolve(app abiTypeApplication, env map[int]*Descriptor, path []string) (*Descriptor, error) {
	decl, ok := r.decls[app.Type]
	if !ok {
		return nil, errors.New(errors.PhaseParse, errors.KindNotFound).
			Path(path...).
			Detail("type id %d not declared", app.Type).
			Build()
	}

	if strings.HasPrefix(decl.Type, "generic ") {
		d, bound := env[decl.TypeID]
		if !bound {
			return nil, errors.New(errors.PhaseParse, errors.KindUnsupported).
				Path(path...).
				Detail("unbound %s", decl.Type).
				Build()
		}
		return d, nil
	}

	args := make([]*Descriptor, len(app.TypeArguments))
	for i, ta := range app.TypeArguments {
		d, err := r.resolve(ta, env, append(path, "<"+strconv.Itoa(i)+">"))
		if err != nil {
			return nil, err
		}
		args[i] = d
	}
	if len(args) != len(decl.TypeParameters) {
		return nil, errors.New(errors.PhaseParse, errors.KindTypeMismatch).
			Path(path...).
			Expected(strconv.Itoa(len(decl.TypeParameters))+" type arguments").
			Actual(strconv.Itoa(len(args))).
			Build()
	}
	inner := make(map[int]*Descriptor, len(args))
	for i, param := range decl.TypeParameters {
		inner[param] = args[i]
	}

	// Instantiations are keyed by declaration and argument identity.
	var kb strings.Builder
	kb.WriteString(strconv.Itoa(decl.TypeID))
	for _, a := range args {
		fmt.Fprintf(&kb, ",%p", a)
	}
	key := kb.String()
	if d, ok := r.cache[key]; ok {
		return d, nil
	}

	return r.build(decl, inner, key, path)
}

func (r *resolver) build(decl *abiTypeDecl, env map[int]*Descriptor, key string, path []string) (*Descriptor, error) {
	typ := decl.Type
	if d, err := Primitive(typ); err == nil {
		return d, nil
	}

	switch {
	case typ == "()":
		return Unit(), nil
	case typ == "raw untyped ptr":
		return U64(), nil
	case strPattern.MatchString(typ):
		n, _ := strconv.Atoi(strPattern.FindStringSubmatch(typ)[1])
		return Str(n), nil
	case arrayPattern.MatchString(typ):
		n, _ := strconv.Atoi(arrayPattern.FindStringSubmatch(typ)[1])
		if len(decl.Components) != 1 {
			return nil, errors.InvalidData(errors.PhaseParse, path, "array declares "+strconv.Itoa(len(decl.Components))+" components")
		}
		elem, err := r.resolve(decl.Components[0], env, append(path, "[]"))
		if err != nil {
			return nil, err
		}
		d := Array(elem, n)
		r.cache[key] = d
		return d, nil
	case tuplePattern.MatchString(typ):
		elems := make([]*Descriptor, len(decl.Components))
		for i, c := range decl.Components {
			d, err := r.resolve(c, env, append(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			elems[i] = d
		}
		d := Tuple(elems...)
		r.cache[key] = d
		return d, nil
	}

	keyword, name, ok := strings.Cut(typ, " ")
	if !ok || (keyword != "struct" && keyword != "enum") {
		return nil, errors.New(errors.PhaseParse, errors.KindUnsupported).
			Path(path...).
			Detail("type %q", typ).
			Build()
	}

	if keyword == "struct" {
		switch name {
		case "Vec", "std::vec::Vec":
			if len(decl.TypeParameters) != 1 {
				return nil, errors.InvalidData(errors.PhaseParse, path, "Vec must take exactly one type parameter")
			}
			d := Vector(env[decl.TypeParameters[0]])
			r.cache[key] = d
			return d, nil
		case "Bytes", "std::bytes::Bytes":
			return Bytes(), nil
		case "String", "std::string::String":
			return String(), nil
		}
	}

	// The placeholder is cached before members resolve so that a
	// self-reference through Vec terminates; Validate rejects any other cycle.
	self := &Descriptor{Kind: KindStruct, Name: name}
	if keyword == "enum" {
		self.Kind = KindEnum
		self.Width = 64
	}
	r.cache[key] = self

	members := make([]Field, len(decl.Components))
	for i, c := range decl.Components {
		d, err := r.resolve(c, env, append(path, c.Name))
		if err != nil {
			return nil, err
		}
		members[i] = Field{Name: c.Name, Type: d}
	}

	var (
		built *Descriptor
		err   error
	)
	if keyword == "struct" {
		built, err = Struct(name, members...)
	} else {
		built, err = Enum(name, members...)
	}
	if err != nil {
		delete(r.cache, key)
		return nil, err
	}
	*self = *built
	if err := Validate(self); err != nil {
		delete(r.cache, key)
		return nil, err
	}
	return self, nil
}
