// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision
// schedules.
//
// # Available Jobs
//
// 1. OrderStatsJob - refreshes the ordering_orders_by_status gauge from the store
//
// # Usage
//
//	jobManager := jobs.NewJobManager(orderStatsHandler, m, cfg.OrderStatsSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and leaves the gauge at its previous values. An
// invalid schedule is reported by StartAll.
package jobs
