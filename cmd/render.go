package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AndrewBazen/django-schema-viewer/internal/layout"
	"github.com/AndrewBazen/django-schema-viewer/internal/render"
	"github.com/AndrewBazen/django-schema-viewer/internal/routing"
	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

var (
	renderSchemaPath string
	renderOutPath    string
	renderApps       []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a schema snapshot to an SVG diagram",
	Long:  `Loads a schema document (file or stdin), lays it out as a hierarchical grid, routes its foreign-key edges, and writes the resulting SVG document.`,
	Run: func(cmd *cobra.Command, args []string) {
		sch, err := loadSchemaFile(renderSchemaPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to load schema")
			os.Exit(1)
		}

		if len(renderApps) > 0 {
			sch = filterApps(sch, renderApps)
		}

		result := layout.Compute(sch)
		routes := routing.RouteAll(result.Graph, result.Bounds)
		doc := render.RenderSVG(result, routes)

		if err := os.WriteFile(renderOutPath, []byte(doc), 0o644); err != nil {
			log.Error().Err(err).Str("path", renderOutPath).Msg("failed to write diagram")
			os.Exit(1)
		}
		log.Info().Str("path", renderOutPath).Int("nodes", len(result.Graph.Nodes)).Msg("diagram written")
	},
}

func loadSchemaFile(path string) (*schema.Schema, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening schema file: %w", err)
		}
		defer f.Close()
		r = f
	}

	sch, err := schema.FromJSON(r)
	if err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	sch.ResolveFieldNames()
	return sch, nil
}

func filterApps(sch *schema.Schema, apps []string) *schema.Schema {
	want := make(map[string]bool, len(apps))
	for _, a := range apps {
		want[a] = true
	}
	filtered := &schema.Schema{Apps: map[string]schema.App{}}
	for label, app := range sch.Apps {
		if want[label] {
			filtered.Apps[label] = app
		}
	}
	return filtered
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderSchemaPath, "schema", "-", "schema JSON file, or - for stdin")
	renderCmd.Flags().StringVar(&renderOutPath, "out", "diagram.svg", "output SVG file path")
	renderCmd.Flags().StringArrayVar(&renderApps, "app", nil, "restrict the diagram to these app labels (repeatable)")
	_ = renderCmd.MarkFlagRequired("out")
}
