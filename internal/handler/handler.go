// Package handler is the HTTP face of the bot commands.
//
// Each handler binds and validates its request through the validation
// package, calls one service method and returns the result; base.go
// holds the shared pipeline that logs and traces every call.
package handler
