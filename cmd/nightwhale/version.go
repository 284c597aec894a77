package main

import (
	"fmt"
	"runtime"
)

func versionString() string {
	return fmt.Sprintf("nightwhale v%s (Go version: %s)", version, runtime.Version())
}
