package openimages

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-eval/detection"
	"github.com/nvr-ai/go-eval/engine"
	"github.com/nvr-ai/go-eval/logging"
	"github.com/nvr-ai/go-eval/sample"
	"github.com/nvr-ai/go-eval/table"
)

// KeyPrefix namespaces every scalar returned by Evaluate.
const KeyPrefix = "openimages/"

// Metric feeds framework-native data samples into a mean-average-precision
// engine and reports the results.
//
// The engine is held by composition and driven explicitly: Process appends
// to its accumulation state, Evaluate computes, renders the per-class
// tables, resets the state and returns the flattened metric mapping. A
// Metric owns one evaluation round at a time; concurrent rounds on the
// same instance are not supported.
type Metric struct {
	engine engine.Engine
	cfg    Config
}

// NewMetric creates a Metric around an engine instance. Deprecated
// configuration options are resolved here, with a warning, before the
// first evaluation round.
func NewMetric(eng engine.Engine, cfg Config) (*Metric, error) {
	if eng == nil {
		return nil, errors.New("openimages: nil engine")
	}

	logName := cfg.Logger
	if logName == "" {
		logName = DefaultLogger
	}

	return &Metric{
		engine: eng,
		cfg:    cfg.resolve(logging.Get(logName)),
	}, nil
}

// Config returns the resolved configuration.
func (m *Metric) Config() Config {
	return m.cfg
}

// Process parses predictions and ground truths from one batch of data
// samples and appends them to the engine's accumulation state.
//
// The prediction and ground-truth sequences handed to the engine are
// positionally aligned with the input batch, one entry per image. A
// conversion failure aborts the whole batch before anything is
// accumulated.
//
// The batch argument is unused.
// TODO: drop the batch argument once the harness stops passing it.
func (m *Metric) Process(batch map[string]interface{}, samples []sample.DetSample) error {
	predictions := make([]detection.Prediction, 0, len(samples))
	groundtruths := make([]detection.GroundTruth, 0, len(samples))

	for i, s := range samples {
		pred, err := s.PredInstances.Prediction()
		if err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}
		gt, err := s.GroundTruth()
		if err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}

		predictions = append(predictions, pred)
		groundtruths = append(groundtruths, gt)
	}

	m.engine.Add(predictions, groundtruths)
	return nil
}

// Evaluate computes the accumulated metrics, prints one per-class table
// per threshold pair and scale range, resets the engine's accumulation
// state and returns the flattened result mapping.
//
// Every scalar key of the engine's raw result appears in the returned map
// prefixed with KeyPrefix and rounded to 3 decimals. The classwise
// breakdown is consumed by the tables and not re-exposed.
func (m *Metric) Evaluate() (map[string]float64, error) {
	result, err := m.engine.Compute()
	if err != nil {
		return nil, errors.Wrap(err, "compute metrics")
	}
	m.engine.Reset()

	cfg := m.engine.Config()
	header := []string{"class", "gts", "dets", "recall", "ap"}

	for i, thrs := range cfg.ThresholdPairs() {
		for j, scaleRange := range cfg.EffectiveScaleRanges() {
			title := fmt.Sprintf(" IoU thr: %v IoF thr: %v ", thrs[0], thrs[1])
			if !scaleRange.Unbounded() {
				title += fmt.Sprintf("Scale range: %s ", scaleRange)
			}

			rows := make([][]string, 0, len(cfg.Classes))
			var aps []float64
			for k, class := range cfg.Classes {
				cr := result.Classwise[k]
				numGts := cr.NumGts[i][j]

				rows = append(rows, []string{
					class,
					strconv.Itoa(numGts),
					strconv.Itoa(cr.NumDets),
					fmt.Sprintf("%.3f", cr.Recall(i, j)),
					fmt.Sprintf("%.3f", cr.AP[i][j]),
				})

				// Zero-ground-truth classes stay out of the mean entirely.
				if numGts > 0 {
					aps = append(aps, cr.AP[i][j])
				}
			}

			meanAP := 0.0
			if len(aps) > 0 {
				for _, ap := range aps {
					meanAP += ap
				}
				meanAP /= float64(len(aps))
			}

			tbl := table.Table{
				Title:  title,
				Header: header,
				Rows:   rows,
				Footer: []string{"mAP", "", "", "", fmt.Sprintf("%.3f", meanAP)},
			}
			logging.Print(m.cfg.Logger, "\n"+tbl.Render())
		}
	}

	flattened := make(map[string]float64, len(result.Scalars))
	for k, v := range result.Scalars {
		flattened[KeyPrefix+k] = round3(v)
	}
	return flattened, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
