// Package filter narrows a metadata collection. Every function keeps input
// order and returns a new slice, so calls can be chained.
package filter

import (
	"slices"

	"github.com/tristendillon/docsbuilder/core/logger"
	"github.com/tristendillon/docsbuilder/core/models"
)

// ExcludeByFieldValue drops entries whose field equals value, or contains it
// when the field is a list. Entries without the field are kept and reported.
func ExcludeByFieldValue(log logger.Logger, coll []models.FileMetadata, field models.Field, value string) []models.FileMetadata {
	out := make([]models.FileMetadata, 0, len(coll))
	for _, meta := range coll {
		values, ok := meta.Values(field)
		if !ok {
			log.Warn("Field %q doesn't exist on %s", field, meta.Path)
			out = append(out, meta)
			continue
		}
		if !slices.Contains(values, value) {
			out = append(out, meta)
		}
	}
	return out
}

// KeepByFieldValue keeps entries where any of values matches the field (any
// overlap for list fields). No values keeps everything; entries without the
// field are dropped.
func KeepByFieldValue(coll []models.FileMetadata, field models.Field, values ...string) []models.FileMetadata {
	if len(values) == 0 {
		return coll
	}
	out := make([]models.FileMetadata, 0, len(coll))
	for _, meta := range coll {
		have, ok := meta.Values(field)
		if !ok {
			continue
		}
		if slices.ContainsFunc(have, func(v string) bool { return slices.Contains(values, v) }) {
			out = append(out, meta)
		}
	}
	return out
}

// KeepIncludedModules keeps files of the listed modules, or everything when
// the list is empty.
func KeepIncludedModules(coll []models.FileMetadata, includeModules []string) []models.FileMetadata {
	if len(includeModules) == 0 {
		return coll
	}
	out := make([]models.FileMetadata, 0, len(coll))
	for _, meta := range coll {
		if meta.InModule() && slices.Contains(includeModules, meta.Module) {
			out = append(out, meta)
		}
	}
	return out
}

// RemoveExcluded drops excluded modules and types and, when requireModule is
// set, every file outside the modules folder.
func RemoveExcluded(coll []models.FileMetadata, excludeModules, excludeTypes []string, requireModule bool) []models.FileMetadata {
	out := make([]models.FileMetadata, 0, len(coll))
	for _, meta := range coll {
		if meta.InModule() && slices.Contains(excludeModules, meta.Module) {
			continue
		}
		if meta.HasType() && slices.Contains(excludeTypes, meta.Type) {
			continue
		}
		if requireModule && !meta.InModule() {
			continue
		}
		out = append(out, meta)
	}
	return out
}
