// Package taskqueue implements the Notifier interface on top of a Redis-backed
// asynq queue. The HTTP process enqueues, the mail worker process consumes.
package taskqueue

// TaskTypeEmailSend identifies email delivery tasks on the queue.
// Producer and consumer must agree on this value.
const TaskTypeEmailSend = "email:send"

// DefaultQueue is used when the configuration does not name a queue.
const DefaultQueue = "email_queue"

// DefaultConcurrency bounds the worker pool when the configuration is silent.
const DefaultConcurrency = 10
