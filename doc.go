// Package datum provides:
//
// - Typed, ergonomic navigation (read/write/iterate/compare/stringify) over
//   self-describing values whose shape is defined by a recursive schema
// - A Registry that derives one accessor Definition per distinct schema
//   identity, memoized, with embedder overrides for named schemas
// - Rebindable Instances that cache child accessors per logical position and
//   re-bind them to the current raw slot on every access
// - A stable error model via Issues (path, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; the schema model lives under
//   schema/, the in-memory raw-value engine under engine/, the binary codec
//   under codec/.
// - Storage and encoding of values belong to the raw-value engine behind the
//   Value interface; this package only borrows Value handles.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s, err := schema.Parse(schemaJSON)
//	v := engine.New(s)
//	w, err := datum.Wrap(v)
//	rec := w.(*datum.Instance)
//	err = rec.Set(datum.ByName("a"), 5)
//	a, err := rec.Get(datum.ByName("a"))
//	text := rec.Render()
package datum
