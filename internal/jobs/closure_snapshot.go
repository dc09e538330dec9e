package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"courier/internal/service"
)

// ClosureSnapshotJob logs the closure backlog on a schedule: how many
// finished orders are still open and how much money they represent.
// The backlog has no age bound, so the snapshot is what surfaces a
// closure that nobody ran.
type ClosureSnapshotJob struct {
	closureService *service.ClosureService
	schedule       string
	cron           *cron.Cron
}

// NewClosureSnapshotJob creates the snapshot job. The schedule is a
// standard 5-field cron expression.
func NewClosureSnapshotJob(closureService *service.ClosureService, schedule string) *ClosureSnapshotJob {
	return &ClosureSnapshotJob{
		closureService: closureService,
		schedule:       schedule,
		cron:           cron.New(),
	}
}

// Start schedules the snapshot.
func (j *ClosureSnapshotJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	log.Printf("closure snapshot job started (schedule %q)", j.schedule)
	return nil
}

// Stop stops the snapshot job.
func (j *ClosureSnapshotJob) Stop() {
	j.cron.Stop()
	log.Printf("closure snapshot job stopped")
}

func (j *ClosureSnapshotJob) run() {
	ctx := context.Background()

	candidates, err := j.closureService.Candidates(ctx)
	if err != nil {
		log.Printf("closure snapshot failed: %v", err)
		return
	}

	totalAmount := 0
	for _, o := range candidates {
		totalAmount += o.Payment.Total
	}

	log.Printf("closure backlog: %d orders pending closure, total S/ %d", len(candidates), totalAmount)
}
