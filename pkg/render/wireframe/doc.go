// Package wireframe renders a document as boxes on its canvas.
//
// Every element is drawn as a rectangle at its world bounds. Elements are
// emitted in pre-order, so a child paints over its parent and later
// siblings paint over earlier ones, matching z-order. Text kinds show their
// text; other kinds show their name. Labels are sized to fit the box and
// truncated with "..".
//
//	svg := wireframe.RenderSVG(doc.Elements(), 1920, 1080,
//		wireframe.WithHighlight(doc.Selection().Elements()...))
//
// Elements whose bounds leave their parent are clipped to it unless they
// allow overflow.
package wireframe
