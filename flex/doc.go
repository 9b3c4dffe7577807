// Package flex computes flexbox geometry for a tree of layout nodes.
//
// Nodes are addressed by NodeID and hold a Style record. ComputeLayout
// resolves every node's border box relative to its parent in float cells;
// callers round to the terminal grid. Percent dimensions resolve against the
// parent's content box and fall back to auto when that box is indefinite.
// Results are cached per node until the node or a descendant is marked dirty.
package flex
