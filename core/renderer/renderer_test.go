package renderer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/docsbuilder/core/classifier"
	"github.com/tristendillon/docsbuilder/core/config"
	"github.com/tristendillon/docsbuilder/core/extractor"
	"github.com/tristendillon/docsbuilder/core/logger"
)

func job(cfg config.BuildConfig) Job {
	return Job{
		Config: cfg,
		Files: classifier.ClassifyAll([]string{
			"Modules/Users/Forms/UserForm.vue",
			"Modules/Billing/Invoice.vue",
		}, cfg.ModulesFolderName),
		Extractor: extractor.ExtractorFunc(func(_ context.Context, p string) (string, error) {
			return "# " + p + "\n", nil
		}),
		Log: logger.Nop(),
	}
}

func TestMethodName(t *testing.T) {
	cfg := config.DefaultBuild()
	assert.Equal(t, None, MethodName(cfg))

	cfg.RenderMethod = "flat"
	assert.Equal(t, Flat, MethodName(cfg))

	cfg.Tree = true
	assert.Equal(t, Tree, MethodName(cfg))
}

func TestRender_Tree(t *testing.T) {
	cfg := config.DefaultBuild()
	cfg.Tree = true
	cfg.Title = "Vue modules"

	doc, err := NewRegistry().Render(context.Background(), job(cfg))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "# Vue modules\n\n## Users module\n"))
	assert.Contains(t, doc, "### Users Forms")
	assert.Contains(t, doc, "## Billing module")
}

func TestRender_Flat(t *testing.T) {
	cfg := config.DefaultBuild()
	cfg.RenderMethod = Flat

	doc, err := NewRegistry().Render(context.Background(), job(cfg))
	require.NoError(t, err)

	assert.NotContains(t, doc, "## Users module")
	assert.Contains(t, doc, "source: Modules/Billing/Invoice.vue")
}

func TestRender_NoneIsEmptyEvenWithTitle(t *testing.T) {
	cfg := config.DefaultBuild()
	cfg.Title = "Ignored"

	doc, err := NewRegistry().Render(context.Background(), job(cfg))
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestRender_Custom(t *testing.T) {
	r := NewRegistry()
	r.Register("count", func(_ context.Context, j Job) (string, error) {
		return strings.Repeat("*", len(j.Files)), nil
	})

	cfg := config.DefaultBuild()
	cfg.RenderMethod = "count"
	doc, err := r.Render(context.Background(), job(cfg))
	require.NoError(t, err)
	assert.Equal(t, "**", doc)
	assert.Equal(t, []string{"count", Flat, Tree}, r.Names())
}

func TestRender_Unknown(t *testing.T) {
	cfg := config.DefaultBuild()
	cfg.RenderMethod = "jsdoc"

	_, err := NewRegistry().Render(context.Background(), job(cfg))
	assert.ErrorIs(t, err, ErrUnknownRenderer)
}
