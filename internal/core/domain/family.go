package domain

import "strings"

// NamingRule is one entry of the family naming-convention table. If the
// version-stripped name contains Marker, the family collapses to Family
// instead. This covers libraries whose base name embeds a token before the
// first version dot (libSDL2 ships as libSDL2-2.0.0.dylib, so a plain
// first-dot strip would yield the bogus family "libSDL2-2").
type NamingRule struct {
	Marker string
	Family string
}

// NamingTable is an ordered set of naming exceptions applied after the
// default first-dot strip. The table is deliberately pluggable: the known
// exceptions are unlikely to be exhaustive across platforms.
type NamingTable []NamingRule

// DefaultNamingTable returns the exceptions known to appear in practice.
func DefaultNamingTable() NamingTable {
	return NamingTable{
		{Marker: "libSDL2", Family: "libSDL2"},
	}
}

// FamilyOf computes the version-stripped family identifier for a library
// file name. Everything from the first '.' onward is dropped, then the
// naming table is consulted for exceptions.
func (t NamingTable) FamilyOf(fileName string) string {
	family, _, _ := strings.Cut(fileName, ".")
	for _, rule := range t {
		if strings.Contains(family, rule.Marker) {
			return rule.Family
		}
	}
	return family
}
