package business

// Supernode groups a set of child nodes under one name.
type Supernode struct {
	Name  string
	Nodes []string
}

// SupernodeMap is an ordered list of supernodes. Order is significant:
// Resolve returns the first match, so when child sets overlap the earliest
// supernode wins. Configuration order must be preserved when building one.
type SupernodeMap []Supernode

// Resolve returns the name of the first supernode whose child set contains
// node, or node itself when no supernode lists it. It is total over any
// string, including the empty string.
func (m SupernodeMap) Resolve(node string) string {
	for _, s := range m {
		for _, n := range s.Nodes {
			if n == node {
				return s.Name
			}
		}
	}
	return node
}

// AliasTable maps canonical node names to the alternate names used as column
// headers in a dataset. Nodes without an entry keep their own name.
type AliasTable map[string]string

// aliasColumn translates node through aliases and reports whether the result
// names an existing column of tbl. Nodes that miss are dropped by the caller;
// horizontal aggregation only ever touches columns that exist, so a miss is
// policy, not an error.
func aliasColumn(node string, aliases AliasTable, tbl Table) (string, bool) {
	name := node
	if alias, ok := aliases[node]; ok {
		name = alias
	}
	if !tbl.HasColumn(name) {
		return "", false
	}
	return name, true
}
