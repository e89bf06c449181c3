// chronos runs the example driver under the profiler and inspects its reports.
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/colorfulnotion/chronos/chronos"
	log "github.com/colorfulnotion/chronos/log"
	"github.com/colorfulnotion/chronos/storage"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:     "chronos",
		Short:   "In-process function timing profiler",
		Version: fmt.Sprintf("%s (%s)", Version, Commit),
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		logLevel     string
		debugModules string
	)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&debugModules, "debug", "", "Comma separated modules with debug logging (chronos, storage, driver)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := log.InitLogger(logLevel); err != nil {
			return err
		}
		log.EnableModules(debugModules)
		return nil
	}

	cfg := chronos.DefaultConfig()
	rootCmd.PersistentFlags().StringVar(&cfg.OutputDir, "dir", cfg.OutputDir, "Report output directory")

	rootCmd.AddCommand(newRunCmd(cfg), newChartCmd(cfg), newHistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd(cfg *chronos.Config) *cobra.Command {
	var (
		n        int64
		disable  bool
		archive  string
		drawPlot bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the factorial/fibonacci/counter driver under the profiler",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile = !disable
			defer chronos.Release()

			profiler := chronos.Instance()
			name, id := caller(), profiler.ID()
			profiler.Start(name, id, profile)

			fmt.Printf("\nFactorial %d: %d\n", n, factorial(n))
			fmt.Printf("Fibbonacci Sequence %d: %d\n", n, fibb(n))
			fmt.Printf("Counter %d: %d\n\n", n, counter(n))

			profiler.Stop(name, id, profile)
			log.Debug(log.DriverMonitoring, "driver done", "records", profiler.Len())

			// report write failures are logged by Finish and do not fail the run
			_ = profiler.Finish(chronos.FileWriter{}, cfg)

			if drawPlot {
				if err := writeChart(profiler.Records(), cfg.ChartPath()); err != nil {
					log.Error(log.DriverMonitoring, "chart failed", "err", err)
				}
			}
			if archive != "" {
				return archiveRun(archive, id, profiler)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&n, "n", 10, "Input for factorial, fibonacci and counter")
	cmd.Flags().BoolVar(&disable, "disable", false, "Run with profiling disabled")
	cmd.Flags().StringVar(&archive, "archive", "", "LevelDB archive to store the reports in")
	cmd.Flags().BoolVar(&drawPlot, "chart", false, "Also render the HTML chart")
	return cmd
}

func archiveRun(path, id string, profiler *chronos.Profiler) error {
	store, err := storage.OpenRunStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	csvReport, textReport := profiler.EmitReports()
	return store.Put(storage.Run{ID: id, Time: time.Now(), CSV: csvReport, Text: textReport})
}

func writeChart(records []chronos.Record, path string) error {
	var buf bytes.Buffer
	if err := chronos.RenderChart(records, &buf); err != nil {
		return err
	}
	if err := (chronos.FileWriter{}).WriteReport(path, buf.String()); err != nil {
		return err
	}
	fmt.Printf("Generated: %s\n", path)
	return nil
}

func newChartCmd(cfg *chronos.Config) *cobra.Command {
	var csvPath, out string
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render an HTML chart of total and mean time per function from a CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" {
				csvPath = cfg.CSVPath()
			}
			if out == "" {
				out = cfg.ChartPath()
			}
			f, err := os.Open(csvPath)
			if err != nil {
				return err
			}
			defer f.Close()
			records, err := chronos.ParseCSVReport(f)
			if err != nil {
				return fmt.Errorf("%s: %w", csvPath, err)
			}
			return writeChart(records, out)
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV report to read (default <dir>/ChronosProfile.csv)")
	cmd.Flags().StringVar(&out, "out", "", "HTML file to write (default <dir>/program_timemap.html)")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var archive, show string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show archived runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.OpenRunStore(archive)
			if err != nil {
				return err
			}
			defer store.Close()

			if show != "" {
				run, err := store.Get(show)
				if err != nil {
					return err
				}
				fmt.Print(run.Text)
				return nil
			}
			runs, err := store.List()
			if err != nil {
				return err
			}
			for _, run := range runs {
				fmt.Printf("%s\t%s\n", run.Time.Format(time.RFC3339), run.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "LevelDB archive path")
	cmd.Flags().StringVar(&show, "show", "", "Print the text report of one run")
	cmd.MarkFlagRequired("archive")
	return cmd
}
