package workflows

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// DefaultChunkSize bounds the number of points sent to one activity.
const DefaultChunkSize = 1000

// BatchClassifyInput is the input for BatchClassifyWorkflow.
type BatchClassifyInput struct {
	PolygonID string
	Points    []domain.Point
	ChunkSize int
}

// BatchClassifyWorkflow loads a saved polygon, classifies the points in
// chunks and publishes the tally. Results keep the input order. A failed
// publish is logged and does not fail the run.
func BatchClassifyWorkflow(ctx workflow.Context, input BatchClassifyInput) (*domain.BatchReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting batch classification", "polygonID", input.PolygonID, "points", len(input.Points))

	if input.PolygonID == "" {
		return nil, temporal.NewNonRetryableApplicationError("polygon id is required", "InvalidInput", nil)
	}
	chunk := input.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{"InvalidInput"},
		},
	})

	var vertices domain.Polygon
	if err := workflow.ExecuteActivity(ctx, "LoadPolygon", input.PolygonID).Get(ctx, &vertices); err != nil {
		return nil, err
	}

	// Chunks run in parallel; futures are drained in order.
	var futures []workflow.Future
	for start := 0; start < len(input.Points); start += chunk {
		end := min(start+chunk, len(input.Points))
		futures = append(futures, workflow.ExecuteActivity(ctx, "ClassifyPoints", input.PolygonID, vertices, input.Points[start:end]))
	}

	report := &domain.BatchReport{PolygonID: input.PolygonID, Results: make([]domain.Classification, 0, len(input.Points))}
	for _, f := range futures {
		var part []domain.Classification
		if err := f.Get(ctx, &part); err != nil {
			return nil, err
		}
		for _, c := range part {
			report.Tally(c)
		}
		report.Results = append(report.Results, part...)
	}

	if err := workflow.ExecuteActivity(ctx, "PublishReport", *report).Get(ctx, nil); err != nil {
		logger.Warn("publish batch report failed", "error", err)
	}

	logger.Info("Batch classification finished",
		"inside", report.Inside, "onEdge", report.OnEdge, "outside", report.Outside)
	return report, nil
}

// StartBatchClassify submits a BatchClassifyWorkflow run.
func StartBatchClassify(ctx context.Context, c client.Client, taskQueue string, input BatchClassifyInput) (client.WorkflowRun, error) {
	if c == nil {
		return nil, errors.New("temporal client is nil")
	}
	opts := client.StartWorkflowOptions{
		ID:        "batch-classify-" + input.PolygonID + "-" + time.Now().UTC().Format("20060102T150405.000"),
		TaskQueue: taskQueue,
	}
	return c.ExecuteWorkflow(ctx, opts, BatchClassifyWorkflow, input)
}
