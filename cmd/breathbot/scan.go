package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"breathbot/scanner"
)

var scanDir string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the work items found in the videos directory",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanDir, "dir", "", "Directory to scan (default: videos.dir)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, _ []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	dir := a.cfg.Videos.Dir
	if scanDir != "" {
		dir = scanDir
	}

	items, err := scanner.New(a.cfg.Videos.Prefix, a.cfg.Videos.Suffix, a.logger).Scan(dir)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tID\tVARIANT\tPATH")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%d\t%t\t%s\n", item.Key(), item.ID, item.Variant, item.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d work items\n", len(items))
	return nil
}
