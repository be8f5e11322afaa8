package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsurispot/geoaudit/internal/audit"
	"github.com/tsurispot/geoaudit/internal/catalog"
	"github.com/tsurispot/geoaudit/internal/model"
	"github.com/tsurispot/geoaudit/internal/region"
	"github.com/tsurispot/geoaudit/internal/report"
)

var (
	auditDir    string
	auditJSON   string
	auditXLSX   string
	auditStrict bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the batch coordinate audit over the catalog files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("audit"); err != nil {
			return err
		}

		dir := auditDir
		if dir == "" {
			dir = cfg.Catalog.DataDir
		}

		records, err := catalog.New(dir, cfg.Catalog.FilePrefix, cfg.Catalog.FileExt).Extract()
		if err != nil {
			return eris.Wrap(err, "extract catalog")
		}

		rep, err := audit.Run(ctx, region.Default(), records)
		if err != nil {
			return eris.Wrap(err, "run audit")
		}

		if err := report.WriteText(cmd.OutOrStdout(), rep); err != nil {
			return err
		}

		if auditJSON != "" {
			if err := writeFileWith(auditJSON, rep, report.WriteJSON); err != nil {
				return err
			}
			zap.L().Info("wrote json report", zap.String("path", auditJSON))
		}

		if auditXLSX != "" {
			if err := writeFileWith(auditXLSX, rep, report.WriteXLSX); err != nil {
				return err
			}
			zap.L().Info("wrote xlsx report", zap.String("path", auditXLSX))
		}

		if auditStrict && hasErrors(rep) {
			return eris.Errorf("audit found %d issues", len(rep.Issues))
		}
		return nil
	},
}

func hasErrors(rep *audit.Report) bool {
	for _, issue := range rep.Issues {
		if issue.Severity == model.SeverityError {
			return true
		}
	}
	return false
}

func writeFileWith(path string, rep *audit.Report, fn func(w io.Writer, r *audit.Report) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	return fn(f, rep)
}

func init() {
	auditCmd.Flags().StringVar(&auditDir, "dir", "", "catalog directory (default from config)")
	auditCmd.Flags().StringVar(&auditJSON, "json", "", "write JSON report to this path")
	auditCmd.Flags().StringVar(&auditXLSX, "xlsx", "", "write XLSX report to this path")
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "exit non-zero when error-severity issues are found")
	rootCmd.AddCommand(auditCmd)
}
