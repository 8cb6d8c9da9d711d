package tasks

// TaskSchedulerInterface defines the interface for background task
// processing: queue management and worker pool control. The API server
// enqueues review tasks; the scheduler itself enqueues periodic link
// health checks.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
