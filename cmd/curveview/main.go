// seehuhn.de/go/curveview - animated spline charts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command curveview renders animated spline charts to PNG, GIF and PDF
// files.
//
// The chart data and drawing parameters are read from a TOML file given
// with --config; without a file a sample forecast chart is drawn.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"seehuhn.de/go/curveview/config"
)

// globals holds the values of the persistent flags.
type globals struct {
	configPath string
	verbose    bool
	width      int
	height     int

	log *logrus.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{log: logrus.New()}
	g.log.SetOutput(os.Stderr)

	rootCmd := &cobra.Command{
		Use:   "curveview",
		Short: "Render animated spline charts",
		Long: `curveview draws two data series as smooth curves with markers at the
data points, optionally animating the points as they rise from the centre
line to their final positions.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.verbose {
				g.log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "chart description in TOML format")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "enable debug output")
	flags.IntVar(&g.width, "width", 0, "canvas width in pixels (overrides the config file)")
	flags.IntVar(&g.height, "height", 0, "canvas height in pixels (overrides the config file)")

	rootCmd.AddCommand(
		newPNGCmd(g),
		newGIFCmd(g),
		newPDFCmd(g),
		newConfigCmd(g),
	)
	return rootCmd
}

// loadConfig reads the config file, if any, and applies the flags which
// override its values.
func (g *globals) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		cfg, err = config.Load(g.configPath)
		if err != nil {
			return nil, err
		}
		g.log.WithField("file", g.configPath).Debug("loaded chart description")
	}

	if cmd.Flags().Changed("width") {
		cfg.Width = g.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = g.height
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g.log.WithFields(logrus.Fields{
		"width":  cfg.Width,
		"height": cfg.Height,
		"top":    len(cfg.Top),
		"low":    len(cfg.Low),
	}).Debug("chart configuration")
	return cfg, nil
}

func newConfigCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective chart description in TOML format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Encode(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			return nil
		},
	}
}
