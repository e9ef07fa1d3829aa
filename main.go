package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/svmharness/cmd"
	"github.com/mezonai/svmharness/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("HARNESS CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
