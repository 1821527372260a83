package portal

import "strings"

// GroupSeparator splits a structured portal label into its descriptive part and its group.
const GroupSeparator = "__"

// DeriveGroup extracts the pairing group from a structured label: everything after the last
// GroupSeparator, or the whole label when there is none.
//
//	DeriveGroup("portal-to__panorama") == "panorama"
//	DeriveGroup("panorama")            == "panorama"
func DeriveGroup(label string) string {
	if i := strings.LastIndex(label, GroupSeparator); i >= 0 {
		return label[i+len(GroupSeparator):]
	}
	return label
}
