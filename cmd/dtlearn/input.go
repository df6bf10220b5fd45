package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/dtlearn"
	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/dataset/arff"
	"github.com/pbanos/dtlearn/dataset/csv"
	"github.com/pbanos/dtlearn/dataset/sqlset"
	"github.com/pbanos/dtlearn/feature"
	"github.com/pbanos/dtlearn/feature/yaml"
	"github.com/pbanos/dtlearn/tree"
	"github.com/spf13/cobra"
)

const inputHelp = "ARFF (.arff), CSV or SQLite3 (.db) file, or PostgreSQL DB connection URL"

// inputConfig holds the flags needed to read datasets from the inputs
// that do not describe their own features
type inputConfig struct {
	metadataInput string
	table         string
}

func (ic *inputConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(ic.metadataInput), "metadata", "f", "", "path to a YML file with metadata describing the features of CSV and SQL inputs")
	cmd.PersistentFlags().StringVar(&(ic.table), "table", "instances", "table with the instances on SQL inputs")
}

func (ic *inputConfig) readDataset(ctx context.Context, rc *rootCmdConfig, path string) (*dataset.Dataset, error) {
	if strings.HasSuffix(path, ".arff") {
		rc.Logf("Reading ARFF dataset from %s...", path)
		return arff.ReadFile(path)
	}
	features, err := ic.features(rc)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasPrefix(path, "postgresql://") || strings.HasPrefix(path, "postgres://"):
		rc.Logf("Reading dataset from table %s of PostgreSQL DB...", ic.table)
		return readSQLDataset(ctx, "postgres", path, ic.table, features)
	case strings.HasSuffix(path, ".db"):
		rc.Logf("Reading dataset from table %s of SQLite3 file %s...", ic.table, path)
		return readSQLDataset(ctx, "sqlite3", path, ic.table, features)
	case path == "":
		rc.Logf("Reading CSV dataset from STDIN...")
	default:
		rc.Logf("Reading CSV dataset from %s...", path)
	}
	return csv.ReadFile(path, features)
}

func (ic *inputConfig) features(rc *rootCmdConfig) ([]feature.Feature, error) {
	if ic.metadataInput == "" {
		return nil, fmt.Errorf("metadata flag is required for CSV and SQL inputs")
	}
	rc.Logf("Reading features from metadata at %s...", ic.metadataInput)
	return yaml.ReadFeaturesFromFile(ic.metadataInput)
}

func readSQLDataset(ctx context.Context, driver, dsn, table string, features []feature.Feature) (*dataset.Dataset, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s DB: %v", driver, err)
	}
	defer db.Close()
	return sqlset.Read(ctx, db, table, features)
}

// growConfig holds the flags to grow trees with
type growConfig struct {
	minInstances int
	maxDepth     int
}

func (gc *growConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().IntVarP(&(gc.minInstances), "min-instances", "m", dtlearn.DefaultMinInstances, "minimum number of training instances a node needs to be split")
	cmd.PersistentFlags().IntVar(&(gc.maxDepth), "max-depth", 0, "maximum depth of the tree (defaults to 0: no limit)")
}

func (gc *growConfig) strategy() dtlearn.StoppingStrategy {
	return dtlearn.StoppingStrategy{MinInstances: gc.minInstances, MaxDepth: gc.maxDepth}
}

func (gc *growConfig) Validate() error {
	return gc.strategy().Validate()
}

func grow(ctx context.Context, rc *rootCmdConfig, d *dataset.Dataset, gc *growConfig) (*tree.Tree, error) {
	rc.Logf("Growing tree from a dataset with %d instances and %d features to predict %s...", d.Count(), len(d.Attributes()), d.Label().Name())
	t, err := dtlearn.Grow(ctx, d, gc.strategy())
	if err != nil {
		return nil, fmt.Errorf("growing the tree: %v", err)
	}
	rc.Logf("Done")
	return t, nil
}

// checkFeatures returns an error if the dataset does not have the
// features of the tree, in the same order
func checkFeatures(t *tree.Tree, d *dataset.Dataset) error {
	features := d.Features()
	if len(features) != len(t.Features) {
		return fmt.Errorf("test dataset has %d features, the tree expects %d", len(features), len(t.Features))
	}
	for i, f := range t.Features {
		if f.Name() != features[i].Name() || f.Kind() != features[i].Kind() {
			return fmt.Errorf("test dataset feature %d is %s (%v), the tree expects %s (%v)", i, features[i].Name(), features[i].Kind(), f.Name(), f.Kind())
		}
	}
	return nil
}

func requireFile(flag, path string) error {
	if path == "" {
		return fmt.Errorf("required %s flag was not set", flag)
	}
	return nil
}
