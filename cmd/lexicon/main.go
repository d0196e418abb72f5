package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/lexicon/internal/app"
	"github.com/five82/lexicon/internal/dictionary"
	"github.com/five82/lexicon/internal/entry"
	"github.com/five82/lexicon/internal/logtail"
)

var opts app.Options

func main() {
	os.Exit(run())
}

func run() int {
	defer glog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := &cobra.Command{
		Use:           "lexicon",
		Short:         "Personal dictionary with a live terminal view",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its settings from the go flag set; pflag has already filled them.
			return flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	rootCmd.PersistentFlags().StringVar(&opts.StoreAddr, "store", "", "document store address (overrides store_addr)")
	rootCmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "override preferences path (optional)")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.SetGlobalNormalizationFunc(underscoreFlags)

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(logsCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var verr *dictionary.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "lexicon: %s\n", verr.Message())
		} else {
			fmt.Fprintf(os.Stderr, "lexicon: %v\n", err)
		}
		return 1
	}
	return 0
}

// underscoreFlags lets glog's flags be spelled with dashes (--log-dir).
func underscoreFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
}

func serveCmd() *cobra.Command {
	var serveOpts app.ServeOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serveOpts.ConfigPath = opts.ConfigPath
			return app.Serve(cmd.Context(), serveOpts)
		},
	}

	cmd.Flags().StringVar(&serveOpts.DBPath, "db", "", "database path (overrides db_path)")
	cmd.Flags().StringVar(&serveOpts.Listen, "addr", "", "listen address (overrides listen)")
	return cmd
}

func listCmd() *cobra.Command {
	var (
		search string
		flat   bool
		links  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := app.List(cmd.Context(), opts, search)
			if err != nil {
				return err
			}
			if len(sections) == 0 {
				if search != "" {
					fmt.Printf("No words match %q.\n", search)
				} else {
					fmt.Println("No words yet.")
				}
				return nil
			}

			if flat {
				var all []entry.Entry
				for _, s := range sections {
					all = append(all, s.Entries...)
				}
				fmt.Println(renderTable(all, links))
				return nil
			}
			for i, s := range sections {
				if i > 0 {
					fmt.Println()
				}
				fmt.Println(titleStyle.Render(s.Title))
				fmt.Println(renderTable(s.Entries, links))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only show words containing this text")
	cmd.Flags().BoolVar(&flat, "flat", false, "print one table instead of sections")
	cmd.Flags().BoolVar(&links, "links", false, "add a column linking each word to its dictionary page")
	return cmd
}

func addCmd() *cobra.Command {
	var (
		types []string
		tags  []string
	)

	cmd := &cobra.Command{
		Use:   "add [word]",
		Short: "Add a word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := dictionary.Draft{Name: strings.Join(args, " ")}
			for _, t := range types {
				draft.Types = append(draft.Types, entry.Type(strings.ToLower(strings.TrimSpace(t))))
			}
			for _, t := range tags {
				draft.Tags = append(draft.Tags, entry.Tag(strings.ToUpper(strings.TrimSpace(t))))
			}

			notify := dictionary.NotifierFunc(func(success bool, message, dismiss string) {
				if success {
					fmt.Println(message)
				}
			})
			e, err := app.Add(cmd.Context(), opts, draft, notify)
			if err != nil {
				return err
			}
			fmt.Println(renderTable([]entry.Entry{e}, false))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "word class, repeatable ("+joinTypes()+")")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "level tag, repeatable (A1..C2)")
	return cmd
}

func logsCmd() *cobra.Command {
	var (
		lines    int
		severity string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of lexicon's log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sev, err := logtail.ParseSeverity(severity)
			if err != nil {
				return err
			}
			var dir string
			if f := flag.Lookup("log_dir"); f != nil {
				dir = f.Value.String()
			}
			program := filepath.Base(os.Args[0])
			// glog's INFO file holds every severity; filter it so context lines stay in order.
			tail, err := logtail.Read(logtail.Path(dir, program, logtail.Info), lines)
			if err != nil {
				return err
			}
			for _, line := range logtail.Filter(tail, sev) {
				fmt.Println(logtail.Colorize(line))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines to read from the end")
	cmd.Flags().StringVar(&severity, "severity", "info", "minimum severity (info, warning, error, fatal)")
	return cmd
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dbc074"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderTable(entries []entry.Entry, links bool) string {
	headers := []string{"", "WORD", "CLASS", "LEVEL", "ADDED"}
	if links {
		headers = append(headers, "LINK")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{
			favoriteMark(e.Favorite),
			e.Name,
			e.TypeLabel(),
			strings.Join(e.TagLabels(), " "),
			e.DateCreated,
		}
		if links {
			row = append(row, e.LookupURL())
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

func favoriteMark(fav bool) string {
	if fav {
		return "★"
	}
	return " "
}

func joinTypes() string {
	parts := make([]string, len(entry.Types))
	for i, t := range entry.Types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
