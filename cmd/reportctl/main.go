package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resaletrack/internal/config"
	"resaletrack/internal/domain"
	"resaletrack/internal/logger"
	"resaletrack/internal/port"
	"resaletrack/internal/reporting"
	"resaletrack/internal/repository/postgres"
	"resaletrack/internal/service"
	s3storage "resaletrack/internal/storage/s3"
)

type reportOptions struct {
	rangeKey string
	start    string
	end      string
	top      int
	format   string
	out      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "reportctl",
		Short:        "Inspect resale profitability from the command line",
		SilenceUsage: true,
	}
	root.AddCommand(newReportCmd())
	return root
}

func newReportCmd() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a profitability report",
		Example: `  reportctl report --range last_month
  reportctl report --range custom --start 2024-01-01 --end 2024-03-31 --top 5 --format table
  reportctl report --range this_year --format xlsx --out ytd.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runReport(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.rangeKey, "range", string(domain.RangeAll), "all, 30d, 90d, this_month, last_month, this_year, last_year, custom")
	f.StringVar(&opts.start, "start", "", "custom range start (YYYY-MM-DD)")
	f.StringVar(&opts.end, "end", "", "custom range end (YYYY-MM-DD)")
	f.IntVar(&opts.top, "top", 0, "number of top items, clamped to 5..10 (0 uses the configured default)")
	f.StringVar(&opts.format, "format", formatTable, "output format: json, table or xlsx")
	f.StringVarP(&opts.out, "out", "o", "", "write to this file instead of stdout (required for xlsx)")
	return cmd
}

func runReport(ctx context.Context, opts *reportOptions, stdout io.Writer) error {
	if opts.format == formatXLSX && opts.out == "" {
		return fmt.Errorf("--out is required for xlsx output")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(config.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stderr"})
	defer log.Sync() //nolint:errcheck

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var storage port.ObjectStorage
	if cfg.Report.PresignThumbnails && cfg.S3.Bucket != "" {
		if storage, err = s3storage.NewS3Client(ctx, &cfg.S3); err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	loc := cfg.Report.Location()
	now := func() time.Time { return time.Now().In(loc) }
	engine := reporting.NewEngine(service.NewThumbnailLinker(&cfg.Report, &cfg.S3, storage), reporting.Options{
		Placeholder: cfg.Report.PlaceholderThumbnail,
		DefaultTopN: cfg.Report.DefaultTopN,
		Logger:      log.Named("reporting"),
	})
	svc := service.NewReportService(postgres.NewItemRepo(db), engine, now, log.Named("report"))

	report, err := svc.Generate(ctx, domain.ReportRequest{
		RangeKey: opts.rangeKey,
		Start:    opts.start,
		End:      opts.end,
		TopN:     opts.top,
	})
	if err != nil {
		return err
	}

	if opts.out == "" {
		return render(stdout, opts.format, report)
	}
	file, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opts.out, err)
	}
	if err := renderTo(file, opts.format, report); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	log.Info("report written", zap.String("path", opts.out), zap.String("format", opts.format))
	return nil
}

// renderTo renders into wc and closes it. A failed close is reported even
// when rendering succeeded.
func renderTo(wc io.WriteCloser, format string, r *domain.Report) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return render(wc, format, r)
}
