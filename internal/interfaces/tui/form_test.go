package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/client"
)

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyBack  = tea.KeyMsg{Type: tea.KeyShiftTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func noSubmit(context.Context, *client.CategoryForm) (*dto.CategoryResponse, error) {
	return nil, nil
}

func TestView_CamposSegunRol(t *testing.T) {
	root := New(client.NewCategoryForm("", nil), noSubmit).View()
	assert.Contains(t, root, "Create Category")
	assert.Contains(t, root, "SEO keywords")
	assert.Contains(t, root, "Free text 10")
	assert.NotContains(t, root, "Price")

	sub := New(client.NewCategoryForm("p1", nil), noSubmit).View()
	assert.Contains(t, sub, "Create Subcategory")
	assert.Contains(t, sub, "Price")
	assert.NotContains(t, sub, "SEO keywords")
}

func TestUpdate_EscrituraToggleYTipo(t *testing.T) {
	form := client.NewCategoryForm("", nil)
	m := New(form, noSubmit)

	m, _ = press(t, m, runes("Phones"))
	assert.Equal(t, "Phones", form.Name)

	// Name → Sequence → Category type
	m, _ = press(t, m, keyTab, keyTab, keyRight)
	assert.Equal(t, "Services", form.CategoryType)
	m, _ = press(t, m, keyLeft, keyLeft)
	assert.Equal(t, "Products & Services", form.CategoryType)

	m, _ = press(t, m, keyTab, keySpace)
	assert.True(t, form.VisibleToUser)
	assert.Contains(t, m.View(), "[x]")
}

func TestSubmit_ValidacionLocal(t *testing.T) {
	form := client.NewCategoryForm("", nil)
	m, cmd := press(t, New(form, noSubmit), keySave)
	assert.Nil(t, cmd)
	assert.Equal(t, client.ErrNameRequired.Error(), m.Err())
	assert.Contains(t, m.View(), "name is required")

	m, cmd = press(t, m, runes("A"), keySave)
	assert.Nil(t, cmd)
	assert.Equal(t, client.ErrImageRequired.Error(), m.Err())
}

func TestSubmit_EnviaYTerminaConResultado(t *testing.T) {
	img := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(img, []byte("\x89PNG\r\n\x1a\n"), 0o600))

	var sent *client.CategoryForm
	submit := func(_ context.Context, f *client.CategoryForm) (*dto.CategoryResponse, error) {
		sent = f
		return &dto.CategoryResponse{ID: "c1", Name: f.Name}, nil
	}
	form := client.NewCategoryForm("", nil)
	m := New(form, submit)

	// el campo de imagen es el último: shift+tab desde el primero
	m, _ = press(t, m, runes("Electronics"), keyBack, runes(img))
	m, cmd := press(t, m, keySave)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Guardando")

	m, _ = press(t, m, cmd())
	require.NotNil(t, m.Result())
	assert.Equal(t, "c1", m.Result().ID)
	require.NotNil(t, sent)
	require.NotNil(t, sent.Image)
	assert.Equal(t, "icon.png", sent.Image.Filename)
}

func TestSubmit_MuestraMensajeDelServidor(t *testing.T) {
	submit := func(context.Context, *client.CategoryForm) (*dto.CategoryResponse, error) {
		return nil, &client.APIError{Status: 400, Message: "Category already exists"}
	}
	initial := &dto.CategoryResponse{ID: "c1", Name: "Electronics", CategoryType: "Products"}
	m := New(client.NewCategoryForm("", initial), submit)

	m, cmd := press(t, m, keySave)
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	assert.Nil(t, m.Result())
	assert.Equal(t, "Category already exists", m.Err())
}

func TestEscCancela(t *testing.T) {
	m, cmd := press(t, New(client.NewCategoryForm("", nil), noSubmit), tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Cancelled())
	assert.NotNil(t, cmd)
}
