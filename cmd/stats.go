package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndrewBazen/django-schema-viewer/internal/layout"
	"github.com/AndrewBazen/django-schema-viewer/internal/topology"
)

var statsSchemaPath string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a topology summary of the schema graph",
	Long:  `Loads a schema snapshot and reports node/edge counts, centrality, cycles, index hygiene, and god objects, the way analyze did for live databases.`,
	Run: func(cmd *cobra.Command, args []string) {
		sch, err := loadSchemaFile(statsSchemaPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		g := layout.BuildGraph(sch)
		stats := topology.Analyze(g)

		fmt.Printf("🔍 Schema: %d models, %d relationships\n", stats.Nodes, stats.Edges)
		fmt.Println(strings.Repeat("-", 80))

		fmt.Println("\n🏗️  TOPOLOGICAL CONTEXT")
		denseLabel := "Sparse"
		if stats.Density > 0.1 {
			denseLabel = "Dense"
		}
		fmt.Printf("Density:     %.3f (%s)\n", stats.Density, denseLabel)
		fmt.Printf("Components:  %d\n", stats.Components)
		fmt.Printf("Centrality:  %s (%.2f)\n", stats.CentralNode, stats.MaxCentrality)
		fmt.Printf("Deepest chain: %d levels\n", stats.LongestPath)

		fmt.Println("\n🛰️  ISOLATED GROUPS")
		if len(stats.IsolatedGroups) == 0 {
			fmt.Println("None.")
		}
		for i, iso := range stats.IsolatedGroups {
			if i >= 5 {
				fmt.Printf("... and %d more\n", len(stats.IsolatedGroups)-5)
				break
			}
			fmt.Printf("%d. %s\n", i+1, iso)
		}

		fmt.Println("\n🏥 SCHEMA HEALTH REPORT")
		fmt.Println(strings.Repeat("-", 80))

		cycles := topology.Cycles(g)
		if len(cycles) > 0 {
			fmt.Printf("🔴 Found %d circular dependencies:\n", len(cycles))
			for i, c := range cycles {
				fmt.Printf("   %d. %v\n", i+1, c)
			}
		} else {
			fmt.Println("✅ No circular dependencies detected.")
		}

		idx := topology.CheckIndexCoverage(g)
		if len(idx.Missing) > 0 {
			fmt.Printf("\n⚠️  Found %d foreign keys missing an index\n", len(idx.Missing))
			for i, miss := range idx.Missing {
				if i >= 5 {
					fmt.Printf("   ... and %d more\n", len(idx.Missing)-5)
					break
				}
				fmt.Printf("   - %s (%s)\n", miss.Edge, miss.Column)
			}
		} else if idx.TotalFKs > 0 {
			fmt.Printf("\n✅ All %d foreign keys are indexed.\n", idx.TotalFKs)
		} else {
			fmt.Println("\nℹ️  No foreign keys found.")
		}

		gods := topology.DetectGodObjects(g)
		if len(gods) > 0 {
			fmt.Printf("\n😈 Found %d god objects (high coupling)\n", len(gods))
			for _, god := range gods {
				fmt.Printf("   - %s (%d in, %d out)\n", god.Key, god.Dependents, god.Dependencies)
			}
		} else {
			fmt.Println("\n✅ No god objects detected.")
		}

		fmt.Println(strings.Repeat("-", 80))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsSchemaPath, "schema", "-", "schema JSON file, or - for stdin")
}
