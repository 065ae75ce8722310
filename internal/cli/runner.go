package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewRunnerCmd создаёт группу команд для управления runner'ами.
func NewRunnerCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runner",
		Short: "Manage runners",
	}

	cmd.AddCommand(
		newRunnerOpenCmd(clientFn, outputFn),
		newRunnerListCmd(clientFn, outputFn),
		newRunnerShowCmd(clientFn, outputFn),
		newRunnerLogCmd(clientFn, outputFn),
		newRunnerMaximizeCmd(clientFn, outputFn),
		newRunnerMinimizeCmd(clientFn, outputFn),
		newRunnerRerunCmd(clientFn, outputFn),
		newRunnerCloseCmd(clientFn, outputFn),
		newRunnerViewportCmd(clientFn, outputFn),
	)

	return cmd
}

func newRunnerOpenCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "open SCENARIO_ID",
		Short: "Open a runner for a scenario and start the run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			runner, err := client.OpenRunner(args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Runner opened: %s", runner.ID))
			printRunner(out, runner)
			return nil
		},
	}
}

func newRunnerListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List runners in tracking bar order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			runners, err := client.ListRunners()
			if err != nil {
				return err
			}

			headers := []string{"ID", "SCENARIO", "STATUS", "MINIMIZED", "EXECUTING", "LOG_LINES"}
			rows := make([][]string, len(runners))
			for i, r := range runners {
				rows[i] = []string{
					r.ID, r.Name, r.Status,
					strconv.FormatBool(r.Minimized), strconv.FormatBool(r.Executing),
					strconv.Itoa(r.LogLines),
				}
			}

			out.Print(headers, rows, runners)
			return nil
		},
	}
}

func newRunnerShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show runner details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			runner, err := client.GetRunner(args[0])
			if err != nil {
				return err
			}

			printRunner(out, runner)
			return nil
		},
	}
}

func newRunnerLogCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "log ID",
		Short: "Show the run log of a runner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			entries, err := client.GetRunnerLog(args[0])
			if err != nil {
				return err
			}

			headers := []string{"TIME", "LINE"}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Time, e.Line}
			}

			out.Print(headers, rows, entries)
			return nil
		},
	}
}

func newRunnerMaximizeCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "maximize ID",
		Short: "Bring a runner to the viewport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.MaximizeRunner(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Runner maximized: %s", args[0]))
			return nil
		},
	}
}

func newRunnerMinimizeCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "minimize ID",
		Short: "Send a runner to the tracking bar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.MinimizeRunner(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Runner minimized: %s", args[0]))
			return nil
		},
	}
}

func newRunnerRerunCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "rerun ID",
		Short: "Restart the pipeline of a runner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.RerunRunner(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Rerun requested: %s", args[0]))
			return nil
		},
	}
}

func newRunnerCloseCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "close ID",
		Short: "Close a runner and release its surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.CloseRunner(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Runner closed: %s", args[0]))
			return nil
		},
	}
}

func newRunnerViewportCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "viewport",
		Short: "Show which runner the viewport is bound to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			viewport, err := client.GetViewport()
			if err != nil {
				return err
			}

			out.Print(
				[]string{"BOUND", "RUNNER_ID"},
				[][]string{{strconv.FormatBool(viewport.Bound), viewport.RunnerID}},
				viewport,
			)
			return nil
		},
	}
}

func printRunner(out *Output, r *RunnerResponse) {
	out.Print(
		[]string{"ID", "SCENARIO_ID", "NAME", "STATUS", "MINIMIZED", "EXECUTING", "STEPS"},
		[][]string{{
			r.ID, r.ScenarioID, r.Name, r.Status,
			strconv.FormatBool(r.Minimized), strconv.FormatBool(r.Executing),
			strconv.Itoa(r.StepCount),
		}},
		r,
	)
}
