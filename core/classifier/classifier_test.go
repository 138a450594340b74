package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/docsbuilder/core/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		module   string
		typ      string
		filename string
		ext      string
	}{
		{"typed", "front/Modules/Users/Forms/UserForm.vue", "Users", "Forms", "UserForm", ".vue"},
		{"deeply nested keeps first type dir", "Modules/Users/Forms/Inputs/TextInput.vue", "Users", "Forms", "TextInput", ".vue"},
		{"directly in module", "Modules/Billing/Invoice.vue", "Billing", "", "Invoice", ".vue"},
		{"outside modules", "front/components/Button.vue", models.NoModule, "", "Button", ".vue"},
		{"uppercase extension", "Modules/Users/Forms/Av.VUE", "Users", "Forms", "Av", ".vue"},
		{"no extension", "Modules/Users/Forms/Makefile", "Users", "Forms", "Makefile", ""},
		{"modules folder is last segment", "front/Modules", models.NoModule, "", "Modules", ""},
		{"module segment is the file", "Modules/Users", "Users", "", "Users", ""},
		{"empty path", "", models.NoModule, "", "", ""},
		{"doubled slash", "front/Modules//Forms/X.vue", "Forms", "", "X", ".vue"},
		{"doubled slash before type", "front/Modules/Users//Forms/X.vue", "Users", "Forms", "X", ".vue"},
		{"dot segment", "./Modules/./Users/Forms/X.vue", "Users", "Forms", "X", ".vue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := Classify(tt.path, DefaultModulesFolderName)
			assert.Equal(t, tt.path, meta.Path)
			assert.Equal(t, tt.module, meta.Module)
			assert.Equal(t, tt.typ, meta.Type)
			assert.Equal(t, tt.filename, meta.Filename)
			assert.Equal(t, tt.ext, meta.Extension)
		})
	}
}

func TestClassify_NoModuleIffFolderAbsent(t *testing.T) {
	meta := Classify("src/Components/Users/Forms/UserForm.vue", DefaultModulesFolderName)
	assert.False(t, meta.InModule())
	assert.False(t, meta.HasType())

	meta = Classify("src/Components/Users/Forms/UserForm.vue", "Components")
	assert.Equal(t, "Users", meta.Module)
	assert.Equal(t, "Forms", meta.Type)
}

func TestClassify_TypeOnlyWithModule(t *testing.T) {
	for _, p := range []string{
		"front/Modules//Forms/X.vue",
		"front/Modules/",
		"Modules//",
	} {
		meta := Classify(p, DefaultModulesFolderName)
		if !meta.InModule() {
			assert.False(t, meta.HasType(), p)
		}
	}
}

func TestClassify_FirstModulesFolderWins(t *testing.T) {
	meta := Classify("Modules/Shop/Modules/Cart/Item.vue", DefaultModulesFolderName)
	assert.Equal(t, "Shop", meta.Module)
	assert.Equal(t, "Modules", meta.Type)
}

func TestSplitCamel(t *testing.T) {
	assert.Equal(t, []string{"User", "Profile", "Card"}, SplitCamel("UserProfileCard"))
	assert.Equal(t, []string{"index"}, SplitCamel("index"))
	assert.Equal(t, []string{"user", "Card"}, SplitCamel("userCard"))
	assert.Equal(t, []string{"A", "B", "C"}, SplitCamel("ABC"))
	assert.Nil(t, SplitCamel(""))
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	paths := []string{
		"Modules/Users/Forms/UserForm.vue",
		"Modules/Users/Lists/UserList.vue",
		"Modules/Billing/Invoice.vue",
	}

	metas := ClassifyAll(paths, DefaultModulesFolderName)

	require.Len(t, metas, 3)
	assert.Equal(t, "Users", metas[0].Module)
	assert.Equal(t, "Forms", metas[0].Type)
	assert.Equal(t, "Users", metas[1].Module)
	assert.Equal(t, "Lists", metas[1].Type)
	assert.Equal(t, "Billing", metas[2].Module)
	assert.False(t, metas[2].HasType())
	assert.Equal(t, []string{"User", "Form"}, metas[0].NamePrefixes)
}
