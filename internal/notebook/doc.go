// Package notebook reads and writes Jupyter notebook documents (nbformat v4)
// and normalizes their widget-state metadata.
//
// Documents are held as raw JSON fragments. Only metadata.widgets is decoded
// and re-encoded, so rewriting a document changes nothing but that entry and
// the nbformat layout: keys sorted, one-space indent, no HTML escaping and a
// trailing newline.
//
// # Widget State
//
// Renderers require the widget-state section to nest widget definitions
// under a top-level "state" key:
//
//	"widgets": {
//	 "application/vnd.jupyter.widget-state+json": {
//	  "state": {
//	   "<widget id>": {"model_module": "...", "model_name": "...", "state": {...}}
//	  }
//	 }
//	}
//
// NormalizeWidgetState wraps a bare map of widget definitions into that shape
// and leaves already-valid documents untouched.
package notebook
