package types

import (
	"github.com/xlab/treeprint"
)

// Tree renders the descriptor as an indented tree, one member per line.
func (d *Descriptor) Tree() string {
	tree := treeprint.New()
	tree.SetValue(d.String())
	addMembers(tree, d, map[*Descriptor]bool{d: true})
	return tree.String()
}

func addMembers(tree treeprint.Tree, d *Descriptor, active map[*Descriptor]bool) {
	switch d.Kind {
	case KindArray, KindVector:
		addNode(tree, "elem", d.Elem, active)
	case KindStruct, KindTuple:
		for _, f := range d.Fields {
			addNode(tree, f.Name, f.Type, active)
		}
	case KindEnum:
		for _, f := range d.Variants {
			addNode(tree, f.Name, f.Type, active)
		}
	}
}

func addNode(tree treeprint.Tree, name string, d *Descriptor, active map[*Descriptor]bool) {
	switch {
	case active[d]:
		tree.AddMetaNode(name, d.String()+" (recursive)")
	case hasMembers(d):
		branch := tree.AddMetaBranch(name, d.String())
		active[d] = true
		addMembers(branch, d, active)
		delete(active, d)
	default:
		tree.AddMetaNode(name, d.String())
	}
}

func hasMembers(d *Descriptor) bool {
	switch d.Kind {
	case KindArray, KindVector:
		return true
	case KindStruct, KindTuple:
		return len(d.Fields) > 0
	case KindEnum:
		return len(d.Variants) > 0
	default:
		return false
	}
}
