package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supergrid/business"
	"supergrid/loader"
)

var (
	version = "--- set from makefile ---"

	help           = flag.Bool("help", false, "show help message")
	showVersion    = flag.Bool("version", false, "show command version")
	datasetsPath   = flag.String("datasets", "config/datasets.yaml", "dataset definitions (YAML)")
	supernodesPath = flag.String("supernodes", "config/supernodes.yaml", "supernode map (YAML, file order is resolution order)")
	aliasesPath    = flag.String("aliases", "", "node alias table (YAML), used by horizontal aggregation")
	outDir         = flag.String("out", "out", "directory for result CSVs")
)

func main() {
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if *showVersion {
		fmt.Println(version)
		return
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar().With("run_id", uuid.NewString())

	if err := run(logger); err != nil {
		logger.Errorw("application error", "error", err)
		os.Exit(1)
	}
}

func run(logger *zap.SugaredLogger) error {
	datasets, err := loader.LoadDatasets(*datasetsPath)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	supernodes, err := loader.LoadSupernodes(*supernodesPath)
	if err != nil {
		return fmt.Errorf("load supernodes: %w", err)
	}

	aliases := business.AliasTable{}
	if *aliasesPath != "" {
		aliases, err = loader.LoadAliases(*aliasesPath)
		if err != nil {
			return fmt.Errorf("load aliases: %w", err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	logger.Infow("starting aggregation run",
		"datasets", len(datasets),
		"supernodes", len(supernodes),
		"out", *outDir,
	)

	for _, ds := range datasets {
		if err := runDataset(logger, ds, supernodes, aliases); err != nil {
			return fmt.Errorf("dataset %q: %w", ds.Key, err)
		}
	}

	return nil
}

func runDataset(logger *zap.SugaredLogger, ds loader.Dataset, supernodes business.SupernodeMap, aliases business.AliasTable) error {
	if !loader.FileExists(ds.Path) {
		return fmt.Errorf("source %s does not exist", ds.Path)
	}

	tbl, err := loader.Read(ds.DatasetConfig)
	if err != nil {
		return err
	}

	strategy, err := ds.BuildStrategy(aliases)
	if err != nil {
		return err
	}

	op, err := ds.ReduceOp()
	if err != nil {
		return err
	}

	agg := business.NewAggregator(tbl, supernodes, strategy)

	var result business.Table
	switch op {
	case business.Sum:
		result, err = agg.Sum()
	case business.Mean:
		result, err = agg.Mean()
	case business.Count:
		result, err = agg.Count()
	}
	if err != nil {
		return err
	}

	output := ds.Output
	if output == "" {
		output = ds.Key + ".csv"
	}
	outPath := filepath.Join(*outDir, output)
	if err := loader.WriteCSV(outPath, result); err != nil {
		return err
	}

	logger.Infow("dataset aggregated",
		"dataset", ds.Key,
		"strategy", ds.Strategy,
		"op", op.String(),
		"rows_in", tbl.Rows(),
		"rows_out", result.Rows(),
		"output", outPath,
	)
	return nil
}
