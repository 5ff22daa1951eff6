/*
Package jobs holds the scheduled maintenance tasks run by the server.

The only job today flags overdue installment lines: every night it marks
unpaid lines whose due date has passed, so the billing screens and dunning
notifications read a flag instead of recomputing date comparisons. The
engine itself never reads the clock; this is purely surrounding-system
housekeeping.
*/
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/warp/installment-engine/calendar"
	"github.com/warp/installment-engine/store/sqlite"
)

// overdueSchedule runs shortly after midnight, server time.
const overdueSchedule = "15 0 * * *"

// OverdueMarker flags unpaid installment lines past their due date.
type OverdueMarker struct {
	Store *sqlite.Store
	Log   *logrus.Logger
}

// Run satisfies cron.Job.
func (j *OverdueMarker) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.Store.MarkOverdue(ctx, calendar.Today())
	if err != nil {
		j.Log.WithError(err).Error("overdue flagging failed")
		return
	}
	if n > 0 {
		j.Log.WithField("lines", n).Info("flagged overdue installment lines")
	}
}

// Schedule registers the overdue job on the given cron runner.
func Schedule(c *cron.Cron, job *OverdueMarker) (cron.EntryID, error) {
	return c.AddJob(overdueSchedule, job)
}
