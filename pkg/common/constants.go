package common

const (
	RedisStreamSchedulerTaskExecution = "schedule.task.execution"
	RedisStreamPickGeneration         = "picks.generation"
	RedisStreamPropResults            = "picks.prop.results"

	RedisStreamGroup    = "worker-group"
	RedisStreamConsumer = "worker-consumer"
)
