package main

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsurispot/geoaudit/internal/catalog"
	"github.com/tsurispot/geoaudit/internal/region"
	"github.com/tsurispot/geoaudit/internal/verify"
)

var (
	suggestDir   string
	suggestLimit int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest corrected coordinates via forward geocoding",
	Long:  "Forward-geocodes spots whose names are concrete enough to look up and reports stored coordinates that sit more than a kilometer from the best match. Suggestions are advisory; nothing is rewritten.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("suggest"); err != nil {
			return err
		}

		dir := suggestDir
		if dir == "" {
			dir = cfg.Catalog.DataDir
		}

		records, err := catalog.New(dir, cfg.Catalog.FilePrefix, cfg.Catalog.FileExt).Extract()
		if err != nil {
			return eris.Wrap(err, "extract catalog")
		}

		client, err := newNominatimClient()
		if err != nil {
			return eris.Wrap(err, "init geocoder")
		}

		v := verify.NewVerifier(client, region.Default(),
			verify.WithTimeout(time.Duration(cfg.Nominatim.TimeoutSecs)*time.Second))

		enc := json.NewEncoder(cmd.OutOrStdout())

		checked, found := 0, 0
		for _, rec := range records {
			if suggestLimit > 0 && checked >= suggestLimit {
				break
			}
			if !verify.IsVerifiableName(rec.Name) {
				continue
			}
			checked++

			s := v.SuggestCorrection(ctx, rec)
			if s == nil {
				continue
			}
			found++
			if err := enc.Encode(s); err != nil {
				return eris.Wrap(err, "encode suggestion")
			}
		}

		zap.L().Info("suggestion pass complete",
			zap.Int("records", len(records)),
			zap.Int("checked", checked),
			zap.Int("suggestions", found),
		)
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestDir, "dir", "", "catalog directory (default from config)")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 0, "check at most this many spots (0 = all)")
	rootCmd.AddCommand(suggestCmd)
}
