package models

// NoModule marks a file that does not live under the modules folder. The
// classifier cleans paths first, so a module segment is never empty.
const NoModule = ""

// NoType marks a file sitting directly inside its module directory.
const NoType = ""

// NoModuleLabel is how NoModule shows up in headings and trees.
const NoModuleLabel = "none"

// FileMetadata is everything derived from one discovered path.
type FileMetadata struct {
	Path         string
	Extension    string
	Filename     string
	NamePrefixes []string
	Module       string
	Type         string
}

func (m FileMetadata) InModule() bool {
	return m.Module != NoModule
}

func (m FileMetadata) HasType() bool {
	return m.Type != NoType
}

// Field names a FileMetadata attribute that filters can select on.
type Field string

const (
	FieldPath         Field = "path"
	FieldExtension    Field = "extension"
	FieldFilename     Field = "filename"
	FieldNamePrefixes Field = "namePrefixes"
	FieldModule       Field = "module"
	FieldType         Field = "type"
)

// Values returns the field as a list plus whether the entry carries it at all.
// Scalar fields yield one element. Empty values count as absent.
func (m FileMetadata) Values(field Field) ([]string, bool) {
	var scalar string
	switch field {
	case FieldPath:
		scalar = m.Path
	case FieldExtension:
		scalar = m.Extension
	case FieldFilename:
		scalar = m.Filename
	case FieldModule:
		scalar = m.Module
	case FieldType:
		scalar = m.Type
	case FieldNamePrefixes:
		if len(m.NamePrefixes) == 0 {
			return nil, false
		}
		return m.NamePrefixes, true
	default:
		return nil, false
	}
	if scalar == "" {
		return nil, false
	}
	return []string{scalar}, true
}

// ModuleLabel is the module name as printed.
func (m FileMetadata) ModuleLabel() string {
	if !m.InModule() {
		return NoModuleLabel
	}
	return m.Module
}
