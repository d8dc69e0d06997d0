package dataset

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/ev-dss/internal/fetcher"
	"github.com/sells-group/ev-dss/internal/model"
)

// Sources locates the three tables. Feature and ML are required; Cluster
// is optional and may be empty.
type Sources struct {
	Feature string `json:"feature" yaml:"feature"`
	ML      string `json:"ml" yaml:"ml"`
	Cluster string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
}

// Dataset is the fully parsed and derived input to every view.
type Dataset struct {
	Records  []model.Record        `json:"records" yaml:"records"`
	ML       []model.MLRecord      `json:"ml" yaml:"ml"`
	Clusters []model.ClusterRecord `json:"clusters" yaml:"clusters"`
}

// Loader fetches and assembles a Dataset.
type Loader struct {
	fetcher fetcher.Fetcher
}

// NewLoader creates a Loader that reads sources through f.
func NewLoader(f fetcher.Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Load fetches all three sources concurrently. A failure of either required
// source fails the whole load with no partial result. A cluster failure is
// logged and the dataset is returned without cluster rows.
func (l *Loader) Load(ctx context.Context, src Sources) (*Dataset, error) {
	var (
		raw      []model.Record
		ml       []model.MLRecord
		clusters []model.ClusterRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := fetchParse(gctx, l.fetcher, src.Feature, ParseFeatureCSV)
		if err != nil {
			return eris.Wrap(err, "dataset: load feature table")
		}
		raw = recs
		return nil
	})

	g.Go(func() error {
		recs, err := fetchParse(gctx, l.fetcher, src.ML, ParseMLCSV)
		if err != nil {
			return eris.Wrap(err, "dataset: load ml table")
		}
		ml = recs
		return nil
	})

	if src.Cluster != "" {
		g.Go(func() error {
			recs, err := fetchParse(gctx, l.fetcher, src.Cluster, ParseClusterCSV)
			if err != nil {
				zap.L().Warn("dataset: cluster table unavailable, using heuristic clusters",
					zap.String("source", src.Cluster),
					zap.Error(err),
				)
				return nil
			}
			clusters = recs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := assemble(raw, ml, clusters)
	zap.L().Info("dataset: loaded",
		zap.Int("records", len(ds.Records)),
		zap.Int("ml_records", len(ds.ML)),
		zap.Int("clusters", len(ds.Clusters)),
	)
	return ds, nil
}

// Build parses already-open readers. cluster may be nil.
func Build(ctx context.Context, feature, ml, cluster io.Reader) (*Dataset, error) {
	raw, err := ParseFeatureCSV(ctx, feature)
	if err != nil {
		return nil, err
	}
	mlRecs, err := ParseMLCSV(ctx, ml)
	if err != nil {
		return nil, err
	}
	var clusters []model.ClusterRecord
	if cluster != nil {
		if clusters, err = ParseClusterCSV(ctx, cluster); err != nil {
			return nil, err
		}
	}
	return assemble(raw, mlRecs, clusters), nil
}

func assemble(raw []model.Record, ml []model.MLRecord, clusters []model.ClusterRecord) *Dataset {
	for _, key := range DuplicatePairs(raw) {
		zap.L().Warn("dataset: duplicate EV/ICE rows, first in input order wins",
			zap.String("state", key.State),
			zap.String("city", key.City),
			zap.String("vehicle_class", string(key.VehicleClass)),
		)
	}
	return &Dataset{
		Records:  Derive(raw),
		ML:       ml,
		Clusters: clusters,
	}
}

func fetchParse[T any](ctx context.Context, f fetcher.Fetcher, location string, parse func(context.Context, io.Reader) ([]T, error)) ([]T, error) {
	if location == "" {
		return nil, eris.New("source location is empty")
	}
	body, err := f.Download(ctx, location)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck
	return parse(ctx, body)
}
