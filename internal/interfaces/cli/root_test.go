package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/client"
	"github.com/jhoicas/categories-api/internal/infrastructure/memory"
	"github.com/jhoicas/categories-api/internal/infrastructure/pdf"
	"github.com/jhoicas/categories-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/categories-api/internal/interfaces/http"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir(), 1<<20)
	require.NoError(t, err)
	uc := category.NewUseCase(memory.NewCategoryRepository(), store, nil,
		category.WithCatalogRenderer(pdf.NewMarotoCatalogGenerator("")))
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{CategoryUC: uc, Uploads: store, MaxImageBytes: 1 << 20})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

func writeImage(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(p, []byte("\x89PNG\r\n\x1a\n"), 0o600))
	return p
}

// run ejecuta categoryctl con los argumentos dados y devuelve stdout.
func run(t *testing.T, runner FormRunner, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(runner)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func failRunner(t *testing.T) FormRunner {
	return func(context.Context, *client.CategoryForm, *client.Client) (*dto.CategoryResponse, error) {
		t.Fatal("no debía abrirse el formulario")
		return nil, nil
	}
}

func TestCLI_CreateListGetDeleteExport(t *testing.T) {
	srv := newTestServer(t)
	img := writeImage(t)
	server := "--server=" + srv.URL

	out, err := run(t, failRunner(t), "create", server, "--name", "Electronics", "--image", img)
	require.NoError(t, err)
	assert.Contains(t, out, "creada")

	c := client.New(srv.URL)
	roots, err := c.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	rootID := roots[0].ID

	_, err = run(t, failRunner(t), "create", server, "--parent", rootID, "--name", "Phones", "--image", img)
	require.NoError(t, err)

	out, err = run(t, failRunner(t), "list", server)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Electronics")
	assert.NotContains(t, out, "Phones")

	out, err = run(t, failRunner(t), "list", server, "--parent", rootID)
	require.NoError(t, err)
	assert.Contains(t, out, "Phones")

	out, err = run(t, failRunner(t), "get", server, rootID)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Electronics"`)

	pdfPath := filepath.Join(t.TempDir(), "catalog.pdf")
	_, err = run(t, failRunner(t), "export", server, pdfPath)
	require.NoError(t, err)
	doc, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	out, err = run(t, failRunner(t), "delete", server, rootID)
	require.NoError(t, err)
	assert.Contains(t, out, rootID)

	_, err = run(t, failRunner(t), "get", server, rootID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Category not found", apiErr.Message)
}

func TestCLI_CreateSinImagenFalla(t *testing.T) {
	srv := newTestServer(t)
	_, err := run(t, failRunner(t), "create", "--server="+srv.URL, "--name", "A")
	assert.ErrorIs(t, err, client.ErrImageRequired)
}

func TestCLI_EditAbreFormularioConRegistro(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)
	created, err := c.Create(context.Background(), map[string]string{"name": "Electronics"}, nil)
	require.NoError(t, err)

	var seen *client.CategoryForm
	runner := func(ctx context.Context, f *client.CategoryForm, cl *client.Client) (*dto.CategoryResponse, error) {
		seen = f
		f.Name = "Gadgets"
		return f.Submit(ctx, cl)
	}
	out, err := run(t, runner, "edit", "--server="+srv.URL, created.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "guardada")
	require.NotNil(t, seen)
	assert.True(t, seen.IsEdit())

	got, err := c.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", got.Name)
}

func TestCLI_CancelarNoEsError(t *testing.T) {
	runner := func(context.Context, *client.CategoryForm, *client.Client) (*dto.CategoryResponse, error) {
		return nil, errCancelled
	}
	out, err := run(t, runner, "create")
	require.NoError(t, err)
	assert.True(t, strings.TrimSpace(out) == "")
}

func TestCLI_ServerDesdeEntorno(t *testing.T) {
	srv := newTestServer(t)
	t.Setenv("CATEGORYCTL_SERVER", srv.URL)
	out, err := run(t, failRunner(t), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
}
