package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aswarren/transit/config"
	"github.com/aswarren/transit/internal/hmm"
	"github.com/aswarren/transit/internal/report"
	"github.com/aswarren/transit/internal/tnseq"
)

var (
	ctrlFiles      string
	annotationPath string
	outputPath     string
)

// fallback progress budget when the control file cannot be sized
const defaultIterations = 100

// hmmCmd represents the hmm command
var hmmCmd = &cobra.Command{
	Use:   "hmm",
	Short: "Classify TA sites and genes by essentiality with a Hidden Markov Model",
	Long: `Classify every TA site in the genome as Essential, Growth-Defect,
Non-Essential or Growth-Advantage with a four-state Hidden Markov Model over
the combined read counts, then roll the site calls up to gene-level calls.

Two files are written: the sites file requested with --out, with one row per
TA site (position, read count, posterior state probabilities, state, genes),
and a sibling "_genes" file with one row per gene (site tallies, insertion
density, average read count, essentiality call).`,
	Run: func(cmd *cobra.Command, args []string) {
		runHMM(config.New())
	},
}

func init() {
	RootCmd.AddCommand(hmmCmd)

	// Flags for specifying the paths to the input files and output file
	hmmCmd.Flags().StringVarP(&ctrlFiles, "wig-files", "w", "", "comma-separated paths to control .wig read-count files")
	hmmCmd.Flags().StringVarP(&annotationPath, "annotation", "a", "", "path to the prot_table annotation")
	hmmCmd.Flags().StringVarP(&outputPath, "out", "o", "", "path to write the sites output file")
	hmmCmd.Flags().StringP("replicates", "r", "Mean", "how to combine replicate datasets: Sum or Mean")
	hmmCmd.Flags().Float64("n-terminus", 0.0, "ignore TA sites in this fraction of each gene's N terminus")
	hmmCmd.Flags().Float64("c-terminus", 0.0, "ignore TA sites in this fraction of each gene's C terminus")

	// Mark required flags
	hmmCmd.MarkFlagRequired("wig-files")
	hmmCmd.MarkFlagRequired("annotation")
	hmmCmd.MarkFlagRequired("out")

	// Bind the parameters to viper
	viper.BindPFlag("replicates", hmmCmd.Flags().Lookup("replicates"))
	viper.BindPFlag("n-terminus", hmmCmd.Flags().Lookup("n-terminus"))
	viper.BindPFlag("c-terminus", hmmCmd.Flags().Lookup("c-terminus"))
}

// runHMM reads the datasets, runs the inference passes and writes the
// sites and genes files.
func runHMM(conf config.Config) {
	logrus.Info("Starting HMM Method")

	paths := strings.Split(ctrlFiles, ",")

	logrus.Info("Getting Data")
	datasets, err := tnseq.ReadWigs(paths)
	if err != nil {
		logrus.Fatalf("reading control datasets: %v", err)
	}

	logrus.Infof("Combining Replicates as '%s'", conf.Replicates)
	reads, err := tnseq.Combine(datasets, tnseq.CombineMethod(conf.Replicates))
	if err != nil {
		logrus.Fatalf("combining replicates: %v", err)
	}
	positions := datasets[0].Positions

	genes, err := tnseq.ReadProtTable(annotationPath)
	if err != nil {
		logrus.Fatalf("reading annotation: %v", err)
	}
	ann := tnseq.Annotate(genes, positions, reads, conf.NTerminus, conf.CTerminus)

	// Size the progress bar from the first control file; the count is
	// cosmetic, so fall back to a fixed budget when the file cannot
	// be sized.
	iterations := defaultIterations
	if n, err := tnseq.CountDataLines(paths[0]); err == nil {
		iterations = n*4 + 1
	}
	bar := progressbar.NewOptions(iterations,
		progressbar.OptionSetDescription("Running HMM Method"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	res, err := hmm.Run(reads, func() { bar.Add(1) })
	if err != nil {
		logrus.Fatalf("hmm: %v", err)
	}
	bar.Finish()

	sitesFile, err := os.Create(outputPath)
	if err != nil {
		logrus.Fatalf("creating sites file: %v", err)
	}
	defer sitesFile.Close()

	cmdline := fmt.Sprintf("transit hmm -w %s -a %s -o %s", ctrlFiles, annotationPath, outputPath)
	if err := report.WriteSites(sitesFile, res, positions, ann, cmdline); err != nil {
		logrus.Fatalf("writing sites file: %v", err)
	}
	logrus.Infof("Finished HMM - Sites Method")
	logrus.Infof("Adding File: %s", outputPath)

	logrus.Info("Creating HMM Genes Level Output")
	stateAt := make(map[int]hmm.State, len(positions))
	for t, p := range positions {
		stateAt[p] = res.Path[t]
	}
	calls := hmm.CallGenes(genes, stateAt, res.Theta)

	genesPath := genesOutputPath(outputPath)
	genesFile, err := os.Create(genesPath)
	if err != nil {
		logrus.Fatalf("creating genes file: %v", err)
	}
	defer genesFile.Close()

	if err := report.WriteGenes(genesFile, calls); err != nil {
		logrus.Fatalf("writing genes file: %v", err)
	}
	logrus.Infof("Adding File: %s", genesPath)
	logrus.Info("Finished HMM Method")
}

// genesOutputPath derives the genes file path from the sites file
// path: output.dat becomes output_genes.dat.
func genesOutputPath(sitesPath string) string {
	ext := filepath.Ext(sitesPath)
	if ext == "" {
		return sitesPath + "_genes"
	}
	return strings.TrimSuffix(sitesPath, ext) + "_genes" + ext
}
