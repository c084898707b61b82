package common

// TodoServiceName is the fully qualified gRPC service name shared by the
// server registration and the client stubs.
const TodoServiceName = "todo.v1.TodoService"

// DefaultHTTPPort is used when neither flags, JSON nor the PORT variable
// provide an HTTP listen address.
const DefaultHTTPPort = "8080"
