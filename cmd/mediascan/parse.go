package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/pkg/release"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <filename>...",
	Short: "Show how filenames are read for season, episodes and source",
	Long: `Runs the episode extractor and source detection over filenames without
touching the catalog. Useful for checking why an item lands in "Unparsed".

Examples:
  mediascan parse "Show.S01E01-03.1080p.BluRay.mkv"
  mediascan parse --file names.txt`,
	RunE: runParseCmd,
}

func init() {
	parseCmd.Flags().StringP("file", "f", "", "Read filenames from file (one per line)")
	rootCmd.AddCommand(parseCmd)
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")

	names := args
	if inputFile != "" {
		fromFile, err := readNamesFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return errors.New("usage: mediascan parse <filename>... or mediascan parse --file <names>")
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Name", "Pattern", "Season", "Episodes", "Source"},
		parseRows(names),
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}

func parseRows(names []string) [][]string {
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		ref := release.ParseEpisodes(name)
		season, episodes := "-", "-"
		if ref.OK() {
			season = strconv.Itoa(ref.Season)
			eps := make([]string, len(ref.Episodes))
			for i, e := range ref.Episodes {
				eps[i] = strconv.Itoa(e)
			}
			sep := ","
			if ref.Pattern == release.PatternRange || ref.Pattern == release.PatternRangeDashE {
				sep = "-"
			}
			episodes = strings.Join(eps, sep)
		}
		rows = append(rows, []string{name, ref.Pattern.String(), season, episodes, release.DetectSource(name)})
	}
	return rows
}

// readNamesFile reads filenames from a file, one per line.
func readNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
