package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/phanxgames/texticles"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "render frames headlessly and write PNG snapshots",
	Args:  cobra.NoArgs,
	RunE:  snapshot,
}

var (
	snapshotFrames int
	snapshotOut    string
	snapshotScript string
)

func init() {
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 120, "frames to simulate before the snapshot")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "screenshots", "output directory")
	snapshotCmd.Flags().StringVar(&snapshotScript, "script", "", "JSON script of pointer moves, control changes and snapshots")
	rootCmd.AddCommand(snapshotCmd)
}

func snapshot(cmd *cobra.Command, args []string) error {
	sim, err := shared.newSimulation()
	if err != nil {
		return err
	}
	h := texticles.NewHeadless(sim)
	h.ScreenshotDir = snapshotOut

	if snapshotScript != "" {
		data, err := os.ReadFile(snapshotScript)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := texticles.LoadScript(data)
		if err != nil {
			return err
		}
		paths, err := h.RunScript(script)
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return err
	}

	h.Frames(snapshotFrames)
	path, err := h.Snapshot(fmt.Sprintf("frame%d", snapshotFrames))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d particles)\n", path, sim.ParticleCount())
	return nil
}

// unescapeNewlines lets a shell argument carry line breaks as a literal \n.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
