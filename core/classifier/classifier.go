package classifier

import (
	"path"
	"strings"
	"unicode"

	"github.com/tristendillon/docsbuilder/core/models"
)

const DefaultModulesFolderName = "Modules"

// Classify derives module, type and name metadata from a slash separated path.
// A file is typed only when at least one directory sits between the module
// directory and the file: Modules/<Module>/<Type>/.../<file>.
// Segments come from the cleaned path, so "a//b" and "a/./b" classify like
// "a/b"; Path keeps what was given.
func Classify(p string, modulesFolderName string) models.FileMetadata {
	clean := p
	if clean != "" {
		clean = path.Clean(p)
	}
	segments := strings.Split(clean, "/")
	base := segments[len(segments)-1]
	ext := path.Ext(base)

	meta := models.FileMetadata{
		Path:      p,
		Extension: strings.ToLower(ext),
		Filename:  strings.TrimSuffix(base, ext),
	}
	meta.NamePrefixes = SplitCamel(meta.Filename)

	folder := -1
	for i, s := range segments {
		if s == modulesFolderName {
			folder = i
			break
		}
	}
	if folder < 0 {
		return meta
	}

	idx := folder + 1
	if idx < len(segments) {
		meta.Module = segments[idx]
	}
	if meta.Module != models.NoModule && len(segments) != idx+2 && idx+1 < len(segments) {
		meta.Type = segments[idx+1]
	}
	return meta
}

// ClassifyAll keeps input order.
func ClassifyAll(paths []string, modulesFolderName string) []models.FileMetadata {
	out := make([]models.FileMetadata, 0, len(paths))
	for _, p := range paths {
		out = append(out, Classify(p, modulesFolderName))
	}
	return out
}

// SplitCamel cuts s right before every uppercase letter.
// "UserProfileCard" -> [User Profile Card], "index" -> [index].
func SplitCamel(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			parts = append(parts, s[start:i])
			start = i
		}
	}
	return append(parts, s[start:])
}
