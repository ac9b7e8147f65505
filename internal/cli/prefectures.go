package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ekistations/pkg/ekidata"
	apperrors "github.com/matzehuels/ekistations/pkg/errors"
	"github.com/matzehuels/ekistations/pkg/stations"
)

// prefecturesCommand lists the prefectures a crawl visits.
func (c *CLI) prefecturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prefectures",
		Short: "List the prefecture codes accepted by --prefecture",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range ekidata.Prefectures() {
				printKeyValue(p.Code, p.Name)
			}
		},
	}
}

// tidyCommand re-sorts and deduplicates an existing station file in place.
func (c *CLI) tidyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tidy [file]",
		Short: "Sort and deduplicate an existing station file",
		Long: `Tidy rewrites a station file produced by fetch (or edited by hand) so that it
is sorted and free of duplicate (line, name) pairs, without contacting ekidata.jp.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := stations.DefaultOutput
			if len(args) == 1 {
				path = args[0]
			}
			if err := apperrors.ValidateOutputPath(path); err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			in, err := stations.Load(path)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "load %s", path)
			}
			n, err := stations.Save(path, in)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeSave, err, "save %s", path)
			}
			prog.done("Tidied %s", path)

			printSuccess("Saved %d stations", n)
			if d := len(in) - n; d > 0 {
				printDetail("%d duplicates removed", d)
			}
			printFile(path)
			return nil
		},
	}
	return cmd
}
