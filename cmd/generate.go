package cmd

import (
	"fmt"
	"time"

	"sheet2sql/internal/dialect"
	"sheet2sql/internal/engine"
	"sheet2sql/internal/schema"

	"github.com/fatih/color"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var dryRun bool

var generateCmd = &cobra.Command{
	Use:   "generate [folder]",
	Short: "Generate SQL scripts from CSV field definitions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			viper.Set("input.folder", args[0])
		}

		cfg, err := LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		d, err := dialect.GetDialect(cfg.Output.Dialect, cfg.Output.Schema)
		if err != nil {
			return err
		}
		Log.Debugf("Using Dialect: %s", cfg.Output.Dialect)

		loader := schema.NewLoader(Log)
		emitter := engine.NewEmitter(d, cfg.EmitterConfig(), Log)
		runner := engine.NewRunner(cfg.RunnerConfig(), loader, emitter, Log)

		if cfg.Input.Workbooks {
			if err := runner.ExtractWorkbooks(cfg.Input.Folder); err != nil {
				return err
			}
		}

		sources, err := runner.Tables(cfg.Input.Folder)
		if err != nil {
			return err
		}

		// Dry Run
		if dryRun {
			return printAnalysis(loader, sources)
		}

		start := time.Now()

		var onProgress func()
		if cfg.Progress && len(sources) > 0 {
			uiprogress.Start()
			bar := uiprogress.AddBar(len(sources)).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Processing: "
			})
			onProgress = func() { bar.Incr() }
		}

		results, err := runner.Process(sources, onProgress)

		if onProgress != nil {
			uiprogress.Stop()
		}

		printReport(results)
		Log.Infof("Done! Time Elapsed: %s", time.Since(start))

		return err
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.Bool("statistics", false, "Emit SET STATISTICS for every column")
	f.Int("statistics-target", 0, "Statistics target used with --statistics")
	f.Bool("owner", false, "Emit ALTER TABLE ... OWNER TO")
	f.String("owner-role", "postgres", "Role used with --owner")
	f.StringP("output", "o", "", "Output folder for __<database>.sql (default: next to the sources)")
	f.String("schema", "public", "Schema tables are created in")
	f.Bool("recursive", true, "Process subfolders")
	f.Bool("workbooks", true, "Flatten .xlsx workbooks to CSV first")
	f.String("template", "", "Shared create_database.sql template")
	f.Bool("progress", false, "Show a progress bar")
	f.BoolVar(&dryRun, "dry-run", false, "Print the resolved tables without writing SQL")

	viper.BindPFlag("sql.statistics", f.Lookup("statistics"))
	viper.BindPFlag("sql.statistics_target", f.Lookup("statistics-target"))
	viper.BindPFlag("sql.owner", f.Lookup("owner"))
	viper.BindPFlag("sql.owner_role", f.Lookup("owner-role"))
	viper.BindPFlag("output.root", f.Lookup("output"))
	viper.BindPFlag("output.schema", f.Lookup("schema"))
	viper.BindPFlag("input.recursive", f.Lookup("recursive"))
	viper.BindPFlag("input.workbooks", f.Lookup("workbooks"))
	viper.BindPFlag("template.shared", f.Lookup("template"))
	viper.BindPFlag("progress", f.Lookup("progress"))
}

func printAnalysis(loader *schema.Loader, sources []string) error {
	fmt.Println("🔍 Analysis Results:")
	for i, src := range sources {
		table := schema.NewTable(src)
		if err := loader.Load(table); err != nil {
			fmt.Printf("[%02d] %s: %v\n", i+1, src, err)
			continue
		}
		fmt.Printf("[%02d] %s.%s (%d fields)\n", i+1, table.Database, table.Name, len(table.Fields))
		for _, f := range table.Fields {
			flags := ""
			if f.IsPrimaryKey {
				flags += " PK"
			}
			if f.HasIndex {
				flags += " IDX(" + f.IndexMethod + ")"
			}
			if f.IsCommonField {
				flags += " COMMON"
			}
			fmt.Printf("     %-30s %s%s\n", f.Name, f.SQLType, flags)
		}
	}
	return nil
}

func printReport(results []schema.TableResult) {
	ok := color.New(color.FgGreen).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	fmt.Println("\n📊 Summary Report:")
	total := 0
	for i, r := range results {
		icon, status := ok("✓"), ok(r.Status)
		switch r.Status {
		case schema.StatusEmpty:
			icon, status = warn("!"), warn(r.Status)
		case schema.StatusFailed:
			icon, status = bad("✗"), bad(r.Status)
		}

		fmt.Printf("[%s] [%02d/%02d] %-20s %-30s : %d fields - %s\n",
			icon, i+1, len(results), r.Database, r.Table, r.Fields, status)
		if r.ErrorMsg != "" {
			fmt.Printf("    └ Error: %s\n", r.ErrorMsg)
		}
		total += r.Fields
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Total Fields: %d\n", total)
}
