// Scenarium CLI — инструмент командной строки для управления
// сценариями, runner'ами и schedules через HTTP API.
//
// Использование:
//
//	scenarium [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	scenario  Управление сценариями и их шагами
//	runner    Управление runner'ами и viewport
//	schedule  Управление schedules
//	kinds     Палитра типов шагов
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Scenarium/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "scenarium",
		Short:         "Scenarium CLI — visual web testing tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewScenarioCmd(clientFn, outputFn),
		cli.NewRunnerCmd(clientFn, outputFn),
		cli.NewScheduleCmd(clientFn, outputFn),
		cli.NewKindsCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
