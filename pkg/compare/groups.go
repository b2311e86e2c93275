package compare

import (
	"path/filepath"
	"strings"
)

// Assignment orders two input files by group: File1 belongs to the
// first group name, File2 to the second.
type Assignment struct {
	File1, File2 string

	// Sniffed is false when neither file name matched a group name and
	// the files were assigned positionally.
	Sniffed bool
}

// AssignGroups matches input files to groups by looking for the first
// group name as a substring of the lowercased base file name. When
// neither file matches, the files keep their given order.
func AssignGroups(file1, file2 string, names [2]string) Assignment {
	key := strings.ToLower(names[0])
	base1 := strings.ToLower(filepath.Base(file1))
	base2 := strings.ToLower(filepath.Base(file2))

	switch {
	case strings.Contains(base1, key):
		return Assignment{File1: file1, File2: file2, Sniffed: true}
	case strings.Contains(base2, key):
		return Assignment{File1: file2, File2: file1, Sniffed: true}
	default:
		return Assignment{File1: file1, File2: file2}
	}
}
