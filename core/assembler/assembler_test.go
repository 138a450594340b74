package assembler

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/docsbuilder/core/classifier"
	"github.com/tristendillon/docsbuilder/core/extractor"
	"github.com/tristendillon/docsbuilder/core/logger"
	"github.com/tristendillon/docsbuilder/core/tree"
)

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (r *recordingLogger) Debug(string, ...interface{}) {}
func (r *recordingLogger) Info(string, ...interface{})  {}
func (r *recordingLogger) Warn(string, ...interface{})  {}
func (r *recordingLogger) Error(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func titleExtractor() extractor.Extractor {
	return extractor.ExtractorFunc(func(_ context.Context, p string) (string, error) {
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		return "# " + name + "\n", nil
	})
}

func TestAssemble_HeadingsAndFragments(t *testing.T) {
	mt := tree.Build(classifier.ClassifyAll([]string{
		"Modules/Users/Forms/UserForm.vue",
		"Modules/Users/Lists/UserList.vue",
		"Modules/Billing/Invoice.vue",
	}, classifier.DefaultModulesFolderName))

	doc, err := New(logger.Nop(), titleExtractor(), DefaultOptions()).Assemble(context.Background(), mt)
	require.NoError(t, err)

	want := "\n## Users module\n" +
		"\n### Users Forms\n\n" +
		"### UserForm\n" +
		"\nsource: Modules/Users/Forms/UserForm.vue\n" +
		"\n### Users Lists\n\n" +
		"### UserList\n" +
		"\nsource: Modules/Users/Lists/UserList.vue\n" +
		"\n## Billing module\n"
	assert.Equal(t, want, doc)
	assert.NotContains(t, doc, "### Billing")
	assert.NotContains(t, doc, "Invoice")
}

func TestAssemble_IncludeUntyped(t *testing.T) {
	mt := tree.Build(classifier.ClassifyAll([]string{
		"Modules/Billing/Forms/InvoiceForm.vue",
		"Modules/Billing/Invoice.vue",
	}, classifier.DefaultModulesFolderName))

	opts := DefaultOptions()
	opts.IncludeUntyped = true
	doc, err := New(logger.Nop(), titleExtractor(), opts).Assemble(context.Background(), mt)
	require.NoError(t, err)

	want := "\n## Billing module\n" +
		"### Invoice\n" +
		"\nsource: Modules/Billing/Invoice.vue\n" +
		"\n### Billing Forms\n\n" +
		"### InvoiceForm\n" +
		"\nsource: Modules/Billing/Forms/InvoiceForm.vue\n"
	assert.Equal(t, want, doc)
}

func TestAssemble_FailedExtractionIsSkipped(t *testing.T) {
	mt := tree.Build(classifier.ClassifyAll([]string{
		"Modules/Users/Forms/UserForm.vue",
		"Modules/Users/Forms/Broken.vue",
		"Modules/Users/Forms/UserAvatar.vue",
	}, classifier.DefaultModulesFolderName))

	log := &recordingLogger{}
	ex := extractor.ExtractorFunc(func(ctx context.Context, p string) (string, error) {
		if strings.Contains(p, "Broken") {
			return "", errors.New("parse error")
		}
		return titleExtractor().Extract(ctx, p)
	})

	doc, err := New(log, ex, DefaultOptions()).Assemble(context.Background(), mt)
	require.NoError(t, err)

	assert.Contains(t, doc, "source: Modules/Users/Forms/UserForm.vue")
	assert.Contains(t, doc, "source: Modules/Users/Forms/UserAvatar.vue")
	assert.NotContains(t, doc, "Broken")
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "Modules/Users/Forms/Broken.vue")
}

func TestAssemble_ConcurrentKeepsTreeOrder(t *testing.T) {
	var paths []string
	for i := 0; i < 12; i++ {
		paths = append(paths, fmt.Sprintf("Modules/M%d/T/File%02d.vue", i%3, i))
	}
	mt := tree.Build(classifier.ClassifyAll(paths, classifier.DefaultModulesFolderName))

	ex := extractor.ExtractorFunc(func(ctx context.Context, p string) (string, error) {
		// earlier files finish last
		var n int
		fmt.Sscanf(path.Base(p), "File%02d.vue", &n)
		time.Sleep(time.Duration(12-n) * time.Millisecond)
		return titleExtractor().Extract(ctx, p)
	})

	opts := DefaultOptions()
	opts.Concurrency = 6
	concurrent, err := New(logger.Nop(), ex, opts).Assemble(context.Background(), mt)
	require.NoError(t, err)

	opts.Concurrency = 1
	sequential, err := New(logger.Nop(), titleExtractor(), opts).Assemble(context.Background(), mt)
	require.NoError(t, err)

	assert.Equal(t, sequential, concurrent)
	assert.Less(t, strings.Index(concurrent, "File00"), strings.Index(concurrent, "File03"))
	assert.Less(t, strings.Index(concurrent, "## M0 module"), strings.Index(concurrent, "## M1 module"))
}

func TestAssemble_HeadingOffset(t *testing.T) {
	mt := tree.Build(classifier.ClassifyAll([]string{"Modules/Users/Forms/UserForm.vue"}, classifier.DefaultModulesFolderName))

	opts := DefaultOptions()
	opts.HeadingOffset = 0
	doc, err := New(logger.Nop(), titleExtractor(), opts).Assemble(context.Background(), mt)
	require.NoError(t, err)
	assert.Contains(t, doc, "\n# UserForm\n")
}

func TestAssemble_Cancelled(t *testing.T) {
	mt := tree.Build(classifier.ClassifyAll([]string{"Modules/Users/Forms/UserForm.vue"}, classifier.DefaultModulesFolderName))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(logger.Nop(), titleExtractor(), DefaultOptions()).Assemble(ctx, mt)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssemble_Empty(t *testing.T) {
	doc, err := New(logger.Nop(), titleExtractor(), DefaultOptions()).Assemble(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestFlat(t *testing.T) {
	coll := classifier.ClassifyAll([]string{
		"components/Button.vue",
		"Modules/Users/Forms/UserForm.vue",
		"Modules/Billing/Invoice.vue",
	}, classifier.DefaultModulesFolderName)

	doc, err := New(logger.Nop(), titleExtractor(), DefaultOptions()).Flat(context.Background(), coll)
	require.NoError(t, err)

	want := "### Button\n" +
		"\nsource: components/Button.vue\n" +
		"### UserForm\n" +
		"\nsource: Modules/Users/Forms/UserForm.vue\n" +
		"### Invoice\n" +
		"\nsource: Modules/Billing/Invoice.vue\n"
	assert.Equal(t, want, doc)
	assert.NotContains(t, doc, " module\n")
}
