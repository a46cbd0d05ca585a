package types

import (
	"strconv"

	"github.com/wippyai/sway-abi/errors"
)

// Validate checks a descriptor graph. It rejects nil members, unsupported
// widths and any cycle that does not pass through a Vector or Bytes edge,
// since such a type has no finite inline size.
func Validate(d *Descriptor) error {
	v := validator{roots: make(map[*Descriptor]bool)}
	v.roots[d] = true
	return v.walk(d, nil, make(map[*Descriptor]bool))
}

type validator struct {
	roots map[*Descriptor]bool // descriptors already walked behind a vector edge
}

func (v *validator) walk(d *Descriptor, path []string, inline map[*Descriptor]bool) error {
	if d == nil {
		return errors.InvalidData(errors.PhaseCompile, path, "nil type descriptor")
	}
	if inline[d] {
		name := d.Name
		if name == "" {
			name = d.String()
		}
		return errors.RecursiveType(errors.PhaseCompile, path, name)
	}

	switch d.Kind {
	case KindBool, KindB256, KindStr, KindBytes, KindString:
		return nil
	case KindUint:
		if _, err := Uint(int(d.Width)); err != nil {
			return err
		}
		return nil
	case KindVector:
		if d.Elem == nil {
			return errors.InvalidData(errors.PhaseCompile, path, "vector without element type")
		}
		if v.roots[d.Elem] {
			return nil
		}
		v.roots[d.Elem] = true
		// Elements live on the heap, so the inline path starts over.
		return v.walk(d.Elem, append(path, "[]"), make(map[*Descriptor]bool))
	}

	inline[d] = true
	defer delete(inline, d)

	switch d.Kind {
	case KindArray:
		return v.walk(d.Elem, append(path, "[]"), inline)
	case KindStruct, KindTuple:
		for i, f := range d.Fields {
			seg := f.Name
			if seg == "" {
				seg = strconv.Itoa(i)
			}
			if err := v.walk(f.Type, append(path, seg), inline); err != nil {
				return err
			}
		}
		return nil
	case KindEnum:
		if err := checkMembers(d.Name, d.Variants); err != nil {
			return err
		}
		for _, f := range d.Variants {
			if err := v.walk(f.Type, append(path, f.Name), inline); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Unsupported(errors.PhaseCompile, "type kind "+d.Kind.String())
	}
}
