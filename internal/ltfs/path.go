package ltfs

// DefaultSeparator joins path components in EFU listings.
const DefaultSeparator = `\`

// JoinPath returns child when parent is the (empty) root path and
// parent+sep+child otherwise.
func JoinPath(parent, child, sep string) string {
	if parent == "" {
		return child
	}

	return parent + sep + child
}
