package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalg/go-bombman/internal/game"
	"github.com/amalg/go-bombman/internal/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List built-in maps",
	Long:  `Shows the built-in maps with their environment and starting items.`,
	Args:  cobra.NoArgs,
	RunE:  runMaps,
}

func runMaps(cmd *cobra.Command, args []string) error {
	fmt.Println("Built-in maps:")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-6s  %s\n", "Name", "Env", "Blocks", "Starting items")
	fmt.Printf("  %-8s  %-6s  %-6s  %s\n", "----", "---", "------", "--------------")

	for _, name := range maps.Names() {
		data, err := maps.Load(name)
		if err != nil {
			return err
		}
		m, err := game.NewMap(data, game.DefaultPlaySetup(), 0, 1)
		if err != nil {
			return fmt.Errorf("map %s: %w", name, err)
		}
		items := "-"
		if si := m.StartingItems(); len(si) > 0 {
			items = fmt.Sprint(si)
		}
		fmt.Printf("  %-8s  %-6s  %-6d  %s\n", name, m.EnvironmentName(), m.InitialBlockCount(), items)
	}

	fmt.Println()
	fmt.Println("Run 'bombman play --map <name>' to play one, or pass a path to a map file.")
	return nil
}
