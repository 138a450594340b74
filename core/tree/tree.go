package tree

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/tristendillon/docsbuilder/core/models"
)

// Build groups metadata by module, then by type inside each module. Modules,
// types and files all keep first-occurrence order.
func Build(coll []models.FileMetadata) models.ModuleTree {
	index := make(map[string]int)
	var out models.ModuleTree

	for _, meta := range coll {
		i, ok := index[meta.Module]
		if !ok {
			i = len(out)
			index[meta.Module] = i
			out = append(out, models.ModuleGroup{
				Name:   meta.Module,
				ByType: make(map[string][]models.FileMetadata),
			})
		}
		group := &out[i]
		group.Files = append(group.Files, meta)
		if _, seen := group.ByType[meta.Type]; !seen {
			group.Types = append(group.Types, meta.Type)
		}
		group.ByType[meta.Type] = append(group.ByType[meta.Type], meta)
	}

	return out
}

// Print writes the tree as an ascii diagram rooted at name.
func Print(w io.Writer, name string, mt models.ModuleTree) error {
	root := gtree.NewRoot(name)
	for _, group := range mt {
		moduleNode := root.Add(fmt.Sprintf("%s (%d)", group.Label(), len(group.Files)))
		for _, typ := range group.Types {
			parent := moduleNode
			if typ != models.NoType {
				parent = moduleNode.Add(typ)
			}
			for _, f := range group.ByType[typ] {
				parent.Add(leafLabel(f))
			}
		}
	}
	if err := gtree.OutputFromRoot(w, root); err != nil {
		return fmt.Errorf("failed to print module tree: %w", err)
	}
	return nil
}

// leafLabel is the file's path below its type directory, so files sharing a
// basename in different subdirectories stay separate leaves.
func leafLabel(f models.FileMetadata) string {
	name := f.Filename + f.Extension
	if f.Type == models.NoType {
		return name
	}
	segments := strings.Split(path.Clean(f.Path), "/")
	for i := 1; i+1 < len(segments); i++ {
		if segments[i-1] == f.Module && segments[i] == f.Type {
			return strings.Join(segments[i+1:], "/")
		}
	}
	return f.Path
}
