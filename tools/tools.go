//go:build tools

// Package tools pins build tooling in go.mod without shipping it in
// any binary.
package tools

import (
	_ "github.com/go-task/task/v3/cmd/task"
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
)
