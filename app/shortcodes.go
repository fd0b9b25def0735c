package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/daemon"
	"github.com/render-shortcodes/render/internal/db/controller/disabled"
	"github.com/render-shortcodes/render/internal/render"
	"github.com/render-shortcodes/render/internal/shortcode"
)

func init() { //nolint: gochecknoinits
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only list shortcodes of this category")
	listCmd.Flags().BoolVar(&listDisabled, "disabled", false, "Only list disabled shortcodes")

	shortcodesCmd.AddCommand(listCmd, disableCmd, enableCmd)
	rootCmd.AddCommand(shortcodesCmd)
}

var (
	listCategory string
	listDisabled bool

	shortcodesCmd = &cobra.Command{
		Use:   "shortcodes",
		Short: "List, disable and enable shortcodes",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the registered shortcodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, registry, err := openLibrary()
			if err != nil {
				return err
			}

			off, err := disabled.Load(db)
			if err != nil {
				return err
			}

			return printShortcodes(cmd.OutOrStdout(), registry.All(), off, listCategory, listDisabled)
		},
	}

	disableCmd = &cobra.Command{
		Use:   "disable CODE...",
		Short: "Disable shortcodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggle(cmd.OutOrStdout(), args, disabled.Disable, "disabled")
		},
	}

	enableCmd = &cobra.Command{
		Use:   "enable CODE...",
		Short: "Enable shortcodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggle(cmd.OutOrStdout(), args, disabled.Enable, "enabled")
		},
	}
)

// openLibrary opens the database and builds the registry without starting the service.
func openLibrary() (*gorm.DB, *shortcode.Registry, error) {
	db, err := daemon.Open(&cfg)
	if err != nil {
		return nil, nil, err
	}

	registry, err := render.BuildRegistry(render.Extensions)
	if err != nil {
		return nil, nil, err
	}

	return db, registry, nil
}

func toggle(w io.Writer, codes []string, apply func(*gorm.DB, ...string) (disabled.Set, error), done string) error {
	db, registry, err := openLibrary()
	if err != nil {
		return err
	}

	if err = checkCodes(registry, codes); err != nil {
		return err
	}

	set, err := apply(db, codes...)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(w).Printfln("%s: %s", done, strings.Join(codes, ", "))
	pterm.Info.WithWriter(w).Printfln("%d shortcode(s) disabled", len(set))

	return nil
}

// checkCodes fails on codes missing from the registry.
func checkCodes(registry *shortcode.Registry, codes []string) error {
	var unknown []string

	for _, code := range codes {
		if _, ok := registry.Get(code); !ok {
			unknown = append(unknown, code)
		}
	}

	if len(unknown) > 0 {
		return fmt.Errorf("unknown shortcode(s): %s", strings.Join(unknown, ", "))
	}

	return nil
}

func printShortcodes(w io.Writer, all []shortcode.Shortcode, off disabled.Set, category string, onlyDisabled bool) error {
	lookup := off.Lookup()
	data := pterm.TableData{{"Code", "Name", "Category", "Source", "Status"}}

	for _, sc := range all {
		if category != "" && sc.Category != category {
			continue
		}

		if onlyDisabled && !lookup[sc.Code] {
			continue
		}

		status := "enabled"
		if lookup[sc.Code] {
			status = "disabled"
		}

		data = append(data, []string{sc.Code, sc.Title, shortcode.CategoryName(sc.Category), sc.Source, status})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}
