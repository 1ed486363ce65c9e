// Package api provides the HTTP handlers, request/response models, and
// error mapping for the task-tracking API.
package api
