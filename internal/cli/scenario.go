package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// NewScenarioCmd создаёт группу команд для управления сценариями.
func NewScenarioCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage scenarios",
	}

	cmd.AddCommand(
		newScenarioListCmd(clientFn, outputFn),
		newScenarioCreateCmd(clientFn, outputFn),
		newScenarioShowCmd(clientFn, outputFn),
		newScenarioUpdateCmd(clientFn, outputFn),
		newScenarioDeleteCmd(clientFn, outputFn),
		newScenarioAddStepCmd(clientFn, outputFn),
		newScenarioMoveStepCmd(clientFn, outputFn),
		newScenarioSetParamCmd(clientFn, outputFn),
		newScenarioRemoveStepCmd(clientFn, outputFn),
		newScenarioExportCmd(clientFn, outputFn),
	)

	return cmd
}

func newScenarioListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			scenarios, err := client.ListScenarios()
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "STEPS", "MARKUP", "UPDATED"}
			rows := make([][]string, len(scenarios))
			for i, s := range scenarios {
				rows[i] = []string{
					s.ID, s.Name, strconv.Itoa(len(s.Steps)),
					strconv.FormatBool(s.HasMarkup), s.UpdatedAt,
				}
			}

			out.Print(headers, rows, scenarios)
			return nil
		},
	}
}

func newScenarioCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var description string
	var markupFile string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			req := CreateScenarioRequest{
				Name:        args[0],
				Description: description,
			}

			if markupFile != "" {
				data, err := os.ReadFile(markupFile)
				if err != nil {
					return fmt.Errorf("read markup file: %w", err)
				}
				markup := string(data)
				req.Markup = &markup
			}

			scenario, err := client.CreateScenario(req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Scenario created: %s", scenario.ID))
			out.Print(
				[]string{"ID", "NAME", "STEPS", "MARKUP"},
				[][]string{{
					scenario.ID, scenario.Name,
					strconv.Itoa(len(scenario.Steps)), strconv.FormatBool(scenario.HasMarkup),
				}},
				scenario,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Scenario description")
	cmd.Flags().StringVar(&markupFile, "markup-file", "", "Path to the HTML snapshot file")

	return cmd
}

func newScenarioShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show scenario details and its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			scenario, err := client.GetScenario(args[0])
			if err != nil {
				return err
			}

			headers := []string{"INDEX", "KIND", "TITLE", "PARAMS"}
			rows := make([][]string, len(scenario.Steps))
			for i, st := range scenario.Steps {
				rows[i] = []string{
					strconv.Itoa(st.Index), st.Kind, st.Title, formatParams(st.Params),
				}
			}

			out.Success(fmt.Sprintf("Scenario: %s (%s)", scenario.Name, scenario.ID))
			out.Print(headers, rows, scenario)
			return nil
		},
	}
}

func newScenarioUpdateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name string
	var description string
	var markupFile string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			req := UpdateScenarioRequest{}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if markupFile != "" {
				data, err := os.ReadFile(markupFile)
				if err != nil {
					return fmt.Errorf("read markup file: %w", err)
				}
				markup := string(data)
				req.Markup = &markup
			}

			scenario, err := client.UpdateScenario(args[0], req)
			if err != nil {
				return err
			}

			out.Success("Scenario updated")
			out.Print(
				[]string{"ID", "NAME", "STEPS", "MARKUP"},
				[][]string{{
					scenario.ID, scenario.Name,
					strconv.Itoa(len(scenario.Steps)), strconv.FormatBool(scenario.HasMarkup),
				}},
				scenario,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New scenario name")
	cmd.Flags().StringVar(&description, "description", "", "New scenario description")
	cmd.Flags().StringVar(&markupFile, "markup-file", "", "Path to the new HTML snapshot file")

	return cmd
}

func newScenarioDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteScenario(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Scenario deleted: %s", args[0]))
			return nil
		},
	}
}

func newScenarioAddStepCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "add-step SCENARIO_ID KIND",
		Short: "Add a step to a scenario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			var atPtr *int
			if cmd.Flags().Changed("at") {
				atPtr = &at
			}

			scenario, err := client.InsertStep(args[0], args[1], atPtr)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Step added: %s", args[1]))
			printSteps(out, scenario)
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "Insert position (default: append)")

	return cmd
}

func newScenarioMoveStepCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "move-step SCENARIO_ID FROM TO",
		Short: "Move a step to another position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid FROM index %q", args[1])
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid TO index %q", args[2])
			}

			scenario, err := client.ReorderStep(args[0], from, to)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Step moved: %d -> %d", from, to))
			printSteps(out, scenario)
			return nil
		},
	}
}

func newScenarioSetParamCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "set-param SCENARIO_ID INDEX KEY VALUE",
		Short: "Set a step parameter",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step index %q", args[1])
			}

			scenario, err := client.UpdateStepParam(args[0], index, args[2], args[3])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Parameter set: %s=%s", args[2], args[3]))
			printSteps(out, scenario)
			return nil
		},
	}
}

func newScenarioRemoveStepCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-step SCENARIO_ID INDEX",
		Short: "Remove a step from a scenario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step index %q", args[1])
			}

			if err := client.DeleteStep(args[0], index); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Step removed: %d", index))
			return nil
		},
	}
}

func newScenarioExportCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "export ID",
		Short: "Export a scenario as a Robot Framework script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			script, err := client.ExportScenario(args[0])
			if err != nil {
				return err
			}

			out.Raw(script)
			return nil
		},
	}
}

// NewKindsCmd создаёт команду вывода палитры типов шагов.
func NewKindsCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List available step kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			kinds, err := client.ListKinds()
			if err != nil {
				return err
			}

			headers := []string{"NAME", "TITLE", "PARAMS", "DESCRIPTION"}
			rows := make([][]string, len(kinds))
			for i, k := range kinds {
				params := make([]string, len(k.Params))
				for j, p := range k.Params {
					params[j] = p.Key
				}
				rows[i] = []string{k.Name, k.Title, formatList(params), k.Description}
			}

			out.Print(headers, rows, kinds)
			return nil
		},
	}
}

// --- Helpers ---

func printSteps(out *Output, scenario *ScenarioResponse) {
	headers := []string{"INDEX", "KIND", "TITLE", "PARAMS"}
	rows := make([][]string, len(scenario.Steps))
	for i, st := range scenario.Steps {
		rows[i] = []string{
			strconv.Itoa(st.Index), st.Kind, st.Title, formatParams(st.Params),
		}
	}
	out.Print(headers, rows, scenario)
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return formatList(parts)
}

func formatList(items []string) string {
	result := ""
	for i, item := range items {
		if i > 0 {
			result += ", "
		}
		result += item
	}
	return result
}
