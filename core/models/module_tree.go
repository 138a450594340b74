package models

// ModuleGroup holds every file of one module, partitioned by type.
// Types and Files keep first-occurrence order.
type ModuleGroup struct {
	Name   string
	Files  []FileMetadata
	Types  []string
	ByType map[string][]FileMetadata
}

func (g ModuleGroup) Label() string {
	if g.Name == NoModule {
		return NoModuleLabel
	}
	return g.Name
}

// Untyped returns the files placed directly in the module directory.
func (g ModuleGroup) Untyped() []FileMetadata {
	return g.ByType[NoType]
}

// ModuleTree is the ordered module list produced for a single build.
type ModuleTree []ModuleGroup

func (t ModuleTree) FileCount() int {
	n := 0
	for _, g := range t {
		n += len(g.Files)
	}
	return n
}

func (t ModuleTree) Module(name string) (ModuleGroup, bool) {
	for _, g := range t {
		if g.Name == name {
			return g, true
		}
	}
	return ModuleGroup{}, false
}
