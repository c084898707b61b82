// Package client is the CLI's gRPC access layer to todo.v1.TodoService.
// It hides the wire messages behind todov1 structs and maps gRPC statuses
// onto the sentinel errors in this package and in common.
package client
