// Package lib holds supporting modules that do not belong to a single
// layer. Today that is the background job queue (asynq over Redis) used
// for on-demand sweeps.
package lib
