package document

import (
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/layout"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// Load builds a document from flat records. Records may appear in any order;
// siblings keep their relative record order. Geometry is derived from each
// record's layout against its parent, parents first. The record's saved
// parent dimensions are used when present, otherwise the parent's derived
// size.
//
// Load fails with ErrCodeInvalidDocument on duplicate ids, unknown parent
// ids and parent cycles.
func Load(records []layout.Record, opts Options) (*Document, error) {
	d := New(opts)

	type node struct {
		rec  layout.Record
		elem *scene.Element
	}
	nodes := make(map[string]*node, len(records))
	order := make([]*node, 0, len(records))
	for i, rec := range records {
		e, defaults := rec.Element()
		if rec.ID == "" {
			// Records without an id keep the generated one.
			rec.ID = e.ID
		}
		if _, dup := nodes[rec.ID]; dup {
			return nil, uferrors.New(uferrors.ErrCodeInvalidDocument, "record %d: duplicate id %q", i, rec.ID)
		}
		if defaults.Any() {
			d.logger.Debug("defaults applied", "element", rec.ID,
				"kind", defaults.Kind, "h_align", defaults.HAlign, "v_align", defaults.VAlign, "margin", defaults.Margin)
		}
		n := &node{rec: rec, elem: e}
		nodes[rec.ID] = n
		order = append(order, n)
	}

	children := make(map[string][]*node)
	for _, n := range order {
		if n.rec.ParentID != "" {
			if _, ok := nodes[n.rec.ParentID]; !ok {
				return nil, uferrors.New(uferrors.ErrCodeInvalidDocument,
					"element %q: unknown parent %q", n.rec.ID, n.rec.ParentID)
			}
		}
		children[n.rec.ParentID] = append(children[n.rec.ParentID], n)
	}

	attached := 0
	var attach func(parent *scene.Element, key string) error
	attach = func(parent *scene.Element, key string) error {
		for _, n := range children[key] {
			p := d.layoutParent(parent)
			if n.rec.ParentWidth > 0 {
				p.Width = n.rec.ParentWidth
			}
			if n.rec.ParentHeight > 0 {
				p.Height = n.rec.ParentHeight
			}
			d.translator.ImportElement(n.elem, p)
			if err := d.graph.Insert(parent, n.elem, -1); err != nil {
				return uferrors.Wrap(uferrors.ErrCodeInvalidDocument, err, "element %q", n.rec.ID)
			}
			d.names.Observe(n.elem.Kind, n.elem.Name)
			attached++
			if err := attach(n.elem, n.rec.ID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := attach(d.root, ""); err != nil {
		return nil, err
	}
	if attached != len(order) {
		return nil, uferrors.New(uferrors.ErrCodeInvalidDocument,
			"%d elements are unreachable from the top level (parent cycle)", len(order)-attached)
	}

	// Unnamed elements get default names once every saved name is known.
	for _, n := range order {
		if n.elem.Name == "" {
			n.elem.Name = d.names.Next(n.elem.Kind)
		}
	}

	d.logger.Debug("loaded", "elements", attached)
	return d, nil
}

// Save exports every user element as a flat record, in pre-order. Alignment
// is kept as loaded or edited; margins and sizes are derived from the
// current geometry.
func (d *Document) Save() []layout.Record {
	records := make([]layout.Record, 0, d.Len())
	for _, top := range d.root.Children() {
		top.Walk(func(e *scene.Element) bool {
			parentID := ""
			if p := e.Parent(); p != nil && !p.IsSystem {
				parentID = p.ID
			}
			p := d.layoutParent(e.Parent())
			records = append(records, layout.RecordOf(e, d.translator.ExportElement(e, p), p, parentID))
			return true
		})
	}
	return records
}
