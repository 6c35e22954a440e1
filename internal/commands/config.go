package commands

import (
	"fmt"
	"os"

	"github.com/goapcore/goap/internal/config"
)

// ConfigCommand manages configuration.
type ConfigCommand struct {
	Init ConfigInitCommand `cmd:"" help:"Create a new configuration file"`
}

// ConfigInitCommand creates a new config file.
type ConfigInitCommand struct {
	Output string `name:"output" help:"Output path for config file" default:"goapctl.yaml"`
	Force  bool   `name:"force" help:"Overwrite existing file"`
}

// Run executes the config init command.
func (cmd *ConfigInitCommand) Run() error {
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cmd.Output)
	}

	if err := os.WriteFile(cmd.Output, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("created configuration file: %s\n", cmd.Output)
	fmt.Println()
	fmt.Println("next steps:")
	fmt.Println("  1. edit the config file to point catalog/trace at your directories")
	fmt.Println("  2. run 'goapctl doctor' to verify the setup")
	fmt.Println("  3. run 'goapctl validate <catalog.yaml>' to check an action catalog")

	return nil
}
