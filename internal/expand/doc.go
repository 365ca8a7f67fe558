// Package expand turns an enum annotated with #[display] into its
// expansion: the enum with per-variant templates stripped, one
// compile_error! per diagnostic, and an impl of ::core::fmt::Display.
//
// The input is a token tree (groups already folded) for the attribute
// arguments and for the item. The pass is single and forward only: a
// Cursor walks an immutable slice by index, group contents are parsed with
// sub-cursors, and nothing is mutated in place. Problems in the input are
// collected as diagnostics and the expansion stays well-formed: every
// variant that has a name gets exactly one match arm, an empty template
// standing in when its own could not be read. Only a missing `enum`
// keyword (or a missing name or body) aborts the expansion.
//
// Generated tokens have empty spans; copied tokens keep their source spans.
package expand
