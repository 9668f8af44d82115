// Package tree implements tree diagrams: layout, painting and focus
// navigation for a hierarchy of nodes with an expand/collapse state.
//
// # Overview
//
// A [Tree] has one content child followed by zero or more branches. The
// content is always painted; branches are laid out and painted only while the
// tree is expanded. Any value implementing [Node] can be a child, including
// other trees, text [Label]s and [Leaf] wrappers of source expressions.
//
// Work happens in two passes driven by the caller:
//
//  1. Layout: [Node.Prepare] computes size, baselines and child offsets
//     bottom-up. It must be re-run after any change to tree shape, content
//     size, expansion or orientation; geometry is never tracked for staleness.
//  2. Paint: [Node.Display] paints top-down onto a [surface.Surface] using the
//     geometry of the last layout pass.
//
// Both passes receive a [Context] carrying the [Orientation] and the text
// metrics, so every call is a pure function of its inputs.
//
// # Orientations
//
// In [Horizontal] mode branches are laid out left to right below the content,
// joined by a stem and a bar. In [Vertical] mode branches are stacked below
// the content, indented, and hang off a rail on the left.
//
// # Navigation
//
// Focus is addressed by a [Path] of child indices from the document root.
// A [Navigator] resolves directional moves using the [Container] interface,
// delegating outward through the path instead of parent pointers.
//
// # Serialization
//
// A tree persists a single attribute, "Expanded", encoded as the literal
// "True" or "False" (see [EncodeExpanded] and [DecodeExpanded]).
package tree
