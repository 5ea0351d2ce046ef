// Package tui formulario de categorías para terminal (bubbletea).
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/client"
	"github.com/jhoicas/categories-api/internal/domain/entity"
)

// SubmitFunc envía el formulario (normalmente form.Submit contra el cliente HTTP).
type SubmitFunc func(ctx context.Context, form *client.CategoryForm) (*dto.CategoryResponse, error)

type fieldKind int

const (
	kindText fieldKind = iota
	kindToggle
	kindChoice
)

type field struct {
	label   string
	kind    fieldKind
	input   textinput.Model
	set     func(string)
	flag    *bool
	choice  *string
	options []string
}

type submitResultMsg struct {
	category *dto.CategoryResponse
	err      error
}

var categoryTypes = []string{
	string(entity.CategoryTypeProducts),
	string(entity.CategoryTypeServices),
	string(entity.CategoryTypeProductsAndServices),
}

// Styles estilos lipgloss del formulario.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// DefaultStyles estilos por defecto.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).MarginBottom(1),
		Label:   lipgloss.NewStyle().Width(24),
		Focused: lipgloss.NewStyle().Width(24).Bold(true).Foreground(lipgloss.Color("33")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Model modelo bubbletea sobre client.CategoryForm.
type Model struct {
	form       *client.CategoryForm
	fields     []field
	focus      int
	imagePath  *string
	submit     SubmitFunc
	submitting bool
	err        string
	result     *dto.CategoryResponse
	cancelled  bool
	styles     Styles
}

// New construye el modelo. Los campos dependen del rol del formulario.
func New(form *client.CategoryForm, submit SubmitFunc) Model {
	m := Model{form: form, submit: submit, imagePath: new(string), styles: DefaultStyles()}
	m.fields = m.buildFields()
	m.fields[0].input.Focus()
	return m
}

func (m *Model) buildFields() []field {
	f, path := m.form, m.imagePath
	fields := []field{
		textField("Name", f.Name, func(v string) { f.Name = v }),
		textField("Sequence", strconv.Itoa(f.Sequence), func(v string) {
			n, _ := strconv.Atoi(strings.TrimSpace(v))
			f.Sequence = n
		}),
		{label: "Category type", kind: kindChoice, choice: &f.CategoryType, options: categoryTypes},
		{label: "Visible to user", kind: kindToggle, flag: &f.VisibleToUser},
		{label: "Visible to vendor", kind: kindToggle, flag: &f.VisibleToVendor},
		{label: "Add to cart", kind: kindToggle, flag: &f.AddToCart},
	}

	if f.IsSubcategory() {
		fields = append(fields,
			textField("Price", f.Price, func(v string) { f.Price = v }),
			textField("Terms", f.Terms, func(v string) { f.Terms = v }),
			field{label: "Enable free text", kind: kindToggle, flag: &f.EnableFreeText},
			textField("Free text", f.FreeText, func(v string) { f.FreeText = v }),
		)
	} else {
		fields = append(fields,
			textField("SEO keywords", f.SEOKeywords, func(v string) { f.SEOKeywords = v }),
			field{label: "Post requests deals", kind: kindToggle, flag: &f.PostRequestsDeals},
			field{label: "Loyalty points", kind: kindToggle, flag: &f.LoyaltyPoints},
			field{label: "Link attributes pricing", kind: kindToggle, flag: &f.LinkAttributesPricing},
		)
		for i := range f.FreeTexts {
			fields = append(fields, textField(fmt.Sprintf("Free text %d", i+1), f.FreeTexts[i], func(v string) { f.FreeTexts[i] = v }))
		}
	}

	imageLabel := "Image path"
	if f.IsEdit() {
		imageLabel = "Image path (optional)"
	}
	fields = append(fields, textField(imageLabel, "", func(v string) { *path = strings.TrimSpace(v) }))
	return fields
}

func textField(label, value string, set func(string)) field {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CharLimit = 256
	ti.Width = 40
	return field{label: label, kind: kindText, input: ti, set: set}
}

// Result categoría guardada (nil si no se envió).
func (m Model) Result() *dto.CategoryResponse { return m.result }

// Cancelled indica si el usuario salió sin guardar.
func (m Model) Cancelled() bool { return m.cancelled }

// Err último error mostrado.
func (m Model) Err() string { return m.err }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			var apiErr *client.APIError
			if errors.As(msg.err, &apiErr) {
				m.err = apiErr.Message
			}
			return m, nil
		}
		m.err = ""
		m.result = msg.category
		return m, tea.Quit

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		cur := &m.fields[m.focus]
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m.move(1), nil
		case "shift+tab", "up":
			return m.move(-1), nil
		case "ctrl+s":
			return m.startSubmit()
		case "enter":
			if m.focus == len(m.fields)-1 {
				return m.startSubmit()
			}
			return m.move(1), nil
		case " ":
			if cur.kind == kindToggle {
				*cur.flag = !*cur.flag
				return m, nil
			}
			if cur.kind == kindChoice {
				cycle(cur, 1)
				return m, nil
			}
		case "left", "right":
			if cur.kind == kindChoice {
				step := 1
				if msg.String() == "left" {
					step = -1
				}
				cycle(cur, step)
				return m, nil
			}
		}
	}

	cur := &m.fields[m.focus]
	if cur.kind != kindText {
		return m, nil
	}
	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	cur.set(cur.input.Value())
	return m, cmd
}

func (m Model) move(step int) Model {
	if m.fields[m.focus].kind == kindText {
		m.fields[m.focus].input.Blur()
	}
	m.focus = (m.focus + step + len(m.fields)) % len(m.fields)
	if m.fields[m.focus].kind == kindText {
		m.fields[m.focus].input.Focus()
	}
	return m
}

func cycle(f *field, step int) {
	idx := 0
	for i, o := range f.options {
		if o == *f.choice {
			idx = i
			break
		}
	}
	idx = (idx + step + len(f.options)) % len(f.options)
	*f.choice = f.options[idx]
}

func (m Model) startSubmit() (tea.Model, tea.Cmd) {
	if p := *m.imagePath; p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			m.err = fmt.Sprintf("no se pudo leer la imagen: %v", err)
			return m, nil
		}
		m.form.Image = &dto.UploadedFile{Filename: filepath.Base(p), Data: data}
	}
	if err := m.form.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}

	m.err = ""
	m.submitting = true
	form, submit := m.form, m.submit
	return m, func() tea.Msg {
		out, err := submit(context.Background(), form)
		return submitResultMsg{category: out, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.form.Title()))
	b.WriteString("\n")

	for i, f := range m.fields {
		label := m.styles.Label
		cursor := "  "
		if i == m.focus {
			label = m.styles.Focused
			cursor = "› "
		}
		b.WriteString(cursor)
		b.WriteString(label.Render(f.label))
		switch f.kind {
		case kindText:
			b.WriteString(f.input.View())
		case kindToggle:
			if *f.flag {
				b.WriteString("[x]")
			} else {
				b.WriteString("[ ]")
			}
		case kindChoice:
			b.WriteString("< " + *f.choice + " >")
		}
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("✗ " + m.err))
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\nGuardando...\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab/↑↓ mover · espacio alternar · ctrl+s guardar · esc salir"))
	return b.String()
}
