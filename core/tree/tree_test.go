package tree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/docsbuilder/core/classifier"
	"github.com/tristendillon/docsbuilder/core/models"
)

func classify(paths ...string) []models.FileMetadata {
	return classifier.ClassifyAll(paths, classifier.DefaultModulesFolderName)
}

func TestBuild_GroupsModulesThenTypes(t *testing.T) {
	mt := Build(classify(
		"Modules/Users/Forms/UserForm.vue",
		"Modules/Users/Lists/UserList.vue",
		"Modules/Billing/Invoice.vue",
	))

	require.Len(t, mt, 2)

	users := mt[0]
	assert.Equal(t, "Users", users.Name)
	assert.Len(t, users.Files, 2)
	assert.Equal(t, []string{"Forms", "Lists"}, users.Types)
	require.Len(t, users.ByType["Forms"], 1)
	assert.Equal(t, "UserForm", users.ByType["Forms"][0].Filename)
	require.Len(t, users.ByType["Lists"], 1)
	assert.Empty(t, users.Untyped())

	billing := mt[1]
	assert.Equal(t, "Billing", billing.Name)
	assert.Len(t, billing.Files, 1)
	assert.Equal(t, []string{models.NoType}, billing.Types)
	require.Len(t, billing.Untyped(), 1)
	assert.Equal(t, "Invoice", billing.Untyped()[0].Filename)
}

func TestBuild_Singleton(t *testing.T) {
	mt := Build(classify("Modules/Users/Forms/UserForm.vue"))

	require.Len(t, mt, 1)
	assert.Equal(t, []string{"Forms"}, mt[0].Types)
	assert.Len(t, mt[0].ByType["Forms"], 1)
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil))
}

func TestBuild_FirstOccurrenceOrder(t *testing.T) {
	input := classify(
		"Modules/B/Z/One.vue",
		"Modules/A/Y/Two.vue",
		"Modules/B/X/Three.vue",
		"Modules/A/Four.vue",
		"Modules/B/Z/Five.vue",
		"other/Six.vue",
	)

	mt := Build(input)

	require.Len(t, mt, 3)
	assert.Equal(t, "B", mt[0].Name)
	assert.Equal(t, "A", mt[1].Name)
	assert.Equal(t, models.NoModule, mt[2].Name)
	assert.Equal(t, models.NoModuleLabel, mt[2].Label())

	assert.Equal(t, []string{"Z", "X"}, mt[0].Types)
	assert.Equal(t, []string{"One", "Three", "Five"}, filenames(mt[0].Files))
	assert.Equal(t, []string{"One", "Five"}, filenames(mt[0].ByType["Z"]))

	assert.Equal(t, []string{"Y", models.NoType}, mt[1].Types)
	assert.Equal(t, 6, mt.FileCount())

	a, ok := mt.Module("A")
	require.True(t, ok)
	assert.Len(t, a.Files, 2)
	_, ok = mt.Module("C")
	assert.False(t, ok)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	mt := Build(classify(
		"Modules/Users/Forms/UserForm.vue",
		"Modules/Billing/Invoice.vue",
	))

	require.NoError(t, Print(&buf, "front/**/*.vue", mt))

	out := buf.String()
	assert.Contains(t, out, "front/**/*.vue")
	assert.Contains(t, out, "Users (1)")
	assert.Contains(t, out, "Forms")
	assert.Contains(t, out, "UserForm.vue")
	assert.Contains(t, out, "Billing (1)")
	assert.Contains(t, out, "Invoice.vue")
}

func TestPrint_DuplicateBasenames(t *testing.T) {
	var buf bytes.Buffer
	mt := Build(classify(
		"Modules/Users/Forms/Create/Index.vue",
		"Modules/Users/Forms/Edit/Index.vue",
		"Modules/Users/Forms/UserForm.vue",
	))

	require.NoError(t, Print(&buf, "front", mt))

	out := buf.String()
	assert.Contains(t, out, "Users (3)")
	assert.Contains(t, out, "Create/Index.vue")
	assert.Contains(t, out, "Edit/Index.vue")
	assert.Contains(t, out, "UserForm.vue")
	assert.Equal(t, 2, strings.Count(out, "Index.vue"))
}

func filenames(coll []models.FileMetadata) []string {
	out := make([]string, 0, len(coll))
	for _, m := range coll {
		out = append(out, m.Filename)
	}
	return out
}
