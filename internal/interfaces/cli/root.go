// Package cli comandos de categoryctl, el cliente de administración de categorías.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/client"
	"github.com/jhoicas/categories-api/internal/interfaces/tui"
)

const (
	envPrefix     = "CATEGORYCTL"
	defaultServer = "http://localhost:5000"
	keyServer     = "server"
	keyToken      = "token"
	keyTimeout    = "timeout"
)

var errCancelled = errors.New("cancelado")

// FormRunner completa y envía el formulario (interactivo por defecto).
type FormRunner func(ctx context.Context, form *client.CategoryForm, c *client.Client) (*dto.CategoryResponse, error)

type app struct {
	v       *viper.Viper
	runForm FormRunner
}

// NewRootCommand construye categoryctl con el formulario de terminal.
func NewRootCommand() *cobra.Command {
	return newRootCommand(runFormTUI)
}

func newRootCommand(runForm FormRunner) *cobra.Command {
	a := &app{v: viper.New(), runForm: runForm}

	root := &cobra.Command{
		Use:           "categoryctl",
		Short:         "Administra categorías y subcategorías",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(keyServer, defaultServer, "URL base de la API (CATEGORYCTL_SERVER)")
	root.PersistentFlags().String(keyToken, "", "JWT de administrador (CATEGORYCTL_TOKEN)")
	root.PersistentFlags().Duration(keyTimeout, 30*time.Second, "timeout por petición")

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()
	for _, k := range []string{keyServer, keyToken, keyTimeout} {
		_ = a.v.BindPFlag(k, root.PersistentFlags().Lookup(k))
	}

	root.AddCommand(
		a.loginCmd(),
		a.listCmd(),
		a.getCmd(),
		a.createCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.exportCmd(),
	)
	return root
}

func (a *app) client() *client.Client {
	return client.New(a.v.GetString(keyServer), client.WithToken(a.v.GetString(keyToken)))
}

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.v.GetDuration(keyTimeout))
}

// =============================================================================
// COMANDOS
// =============================================================================

func (a *app) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtiene un token de administrador",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			out, err := a.client().Login(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expira %s; export %s_TOKEN=<token>\n", out.ExpiresAt.Format(time.RFC3339), envPrefix)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "usuario")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista raíces o subcategorías de --parent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			items, err := a.client().List(ctx, parent)
			if err != nil {
				return err
			}
			printTable(cmd, items)
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "id de la categoría padre")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Muestra una categoría en JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			c, err := a.client().Get(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		},
	}
}

func (a *app) createCmd() *cobra.Command {
	var parent, name, image string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea una categoría (o subcategoría con --parent)",
		Long: `Sin --name abre el formulario interactivo.
Con --name envía directamente los valores indicados.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := client.NewCategoryForm(parent, nil)
			if name == "" {
				return a.interactive(cmd, form)
			}
			form.Name = name
			if err := attachImage(form, image); err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			out, err := form.Submit(ctx, a.client())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "creada %s (%s)\n", out.ID, out.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "id de la categoría padre")
	cmd.Flags().StringVar(&name, "name", "", "nombre (modo no interactivo)")
	cmd.Flags().StringVar(&image, "image", "", "ruta de la imagen")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edita una categoría en el formulario interactivo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			current, err := a.client().Get(ctx, args[0])
			cancel()
			if err != nil {
				return err
			}
			return a.interactive(cmd, client.NewCategoryForm("", current))
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Borra una categoría y sus subcategorías",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			if err := a.client().Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "borrada %s\n", args[0])
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Descarga el catálogo en PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			doc, err := a.client().ExportPDF(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], doc, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", args[0], len(doc))
			return nil
		},
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func (a *app) interactive(cmd *cobra.Command, form *client.CategoryForm) error {
	out, err := a.runForm(cmd.Context(), form, a.client())
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "sin cambios")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "guardada %s (%s)\n", out.ID, out.Name)
	return nil
}

func runFormTUI(ctx context.Context, form *client.CategoryForm, c *client.Client) (*dto.CategoryResponse, error) {
	m := tui.New(form, func(ctx context.Context, f *client.CategoryForm) (*dto.CategoryResponse, error) {
		return f.Submit(ctx, c)
	})
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(tui.Model)
	if !ok || fm.Cancelled() || fm.Result() == nil {
		return nil, errCancelled
	}
	return fm.Result(), nil
}

func attachImage(form *client.CategoryForm, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("leer imagen: %w", err)
	}
	form.Image = &dto.UploadedFile{Filename: filepath.Base(path), Data: data}
	return nil
}

func printTable(cmd *cobra.Command, items []dto.CategoryResponse) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEQ\tTYPE\tVISIBLE\tPRICE")
	for _, c := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Sequence, c.CategoryType, visibleFlags(c), priceText(c))
	}
	_ = w.Flush()
}

func visibleFlags(c dto.CategoryResponse) string {
	var parts []string
	if c.VisibleToUser {
		parts = append(parts, "user")
	}
	if c.VisibleToVendor {
		parts = append(parts, "vendor")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func priceText(c dto.CategoryResponse) string {
	if c.SubcategoryFields == nil || c.Price == nil {
		return "-"
	}
	return strconv.FormatFloat(*c.Price, 'f', 2, 64)
}
