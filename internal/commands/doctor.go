package commands

import (
	"fmt"

	"github.com/goapcore/goap/internal/config"
	"github.com/goapcore/goap/internal/validation"
)

// DoctorCommand runs configuration and environment diagnostics.
type DoctorCommand struct {
	Config string `name:"config" help:"Configuration file path" type:"path"`
}

// Run executes the doctor command.
func (cmd *DoctorCommand) Run() error {
	fmt.Println("running goapctl diagnostics...")
	fmt.Println()

	allOk := true

	cfg, err := config.LoadConfig(cmd.Config)
	if err != nil {
		fmt.Printf("config: %v\n", err)
		return fmt.Errorf("diagnostics failed")
	}

	result := validation.ValidateConfig(cfg)
	if result.IsValid() {
		fmt.Println("configuration: valid")
	} else {
		fmt.Println("configuration: has errors")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e.Error())
		}
		allOk = false
	}
	if len(result.Warnings) > 0 {
		fmt.Println("configuration: has warnings")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s: %s\n", w.Field, w.Message)
		}
	}

	fmt.Println()
	if cfg.Trace.PushgatewayURL != "" {
		fmt.Printf("metrics: pushing to %s\n", cfg.Trace.PushgatewayURL)
	} else {
		fmt.Println("metrics: pushgateway not configured (traces still written to disk)")
	}
	if cfg.Trace.InfluxURL != "" {
		fmt.Printf("metrics: mirroring to influx at %s\n", cfg.Trace.InfluxURL)
	}

	fmt.Println()
	if allOk {
		fmt.Println("all systems ready")
		return nil
	}
	fmt.Println("some issues found, see above")
	return fmt.Errorf("diagnostics failed")
}
