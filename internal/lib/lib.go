// Package lib groups integrations that sit beside the service layer:
// tokens and passwords (auth), Resend email, Asynq jobs, MinIO storage,
// the Redis cache and the realtime websocket hub.
package lib
