package main

import (
	"bufio"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/tsurispot/geoaudit/internal/region"
	"github.com/tsurispot/geoaudit/internal/verify"
)

var verifyFile string

var verifyCmd = &cobra.Command{
	Use:   "verify [lat] [lng]",
	Short: "Verify a coordinate against OpenStreetMap",
	Long:  "Reverse-geocodes the coordinate and reports whether it sits in or near water, with advisory warnings for restricted areas. Use --file to verify many coordinates from a lat,lng list.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("verify"); err != nil {
			return err
		}

		client, err := newNominatimClient()
		if err != nil {
			return eris.Wrap(err, "init geocoder")
		}

		v := verify.NewVerifier(client, region.Default(),
			verify.WithTimeout(time.Duration(cfg.Nominatim.TimeoutSecs)*time.Second))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		if verifyFile != "" {
			coords, err := readCoordFile(verifyFile)
			if err != nil {
				return err
			}
			results := v.VerifyAll(ctx, coords, cfg.Audit.Concurrency)
			return enc.Encode(results)
		}

		if len(args) != 2 {
			return eris.New("verify: expected lat and lng arguments (or --file)")
		}
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return eris.Wrapf(err, "parse lat %q", args[0])
		}
		lng, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return eris.Wrapf(err, "parse lng %q", args[1])
		}

		return enc.Encode(v.Verify(ctx, lat, lng))
	},
}

// readCoordFile reads one "lat,lng" pair per line, skipping blanks and
// comment lines.
func readCoordFile(path string) ([]verify.Coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var coords []verify.Coord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lat, lng, err := splitCoord(line)
		if err != nil {
			return nil, err
		}
		coords = append(coords, verify.Coord{Lat: lat, Lng: lng})
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return coords, nil
}

func splitCoord(line string) (float64, float64, error) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return 0, 0, eris.Errorf("malformed coordinate line %q", line)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "parse lat in %q", line)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "parse lng in %q", line)
	}
	return lat, lng, nil
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFile, "file", "", "verify coordinates listed in this file, one lat,lng per line")
	rootCmd.AddCommand(verifyCmd)
}
