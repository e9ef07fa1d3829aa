package exception

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/monitoring"
)

// SafeGo runs fn in a goroutine and logs a panic instead of crashing.
func SafeGo(name string, fn func()) {
	go func() {
		defer recoverPanic(name, false)
		fn()
	}()
}

// SafeGoWithPanic runs fn in a goroutine and exits the process on panic.
func SafeGoWithPanic(name string, fn func()) {
	go func() {
		defer recoverPanic(name, true)
		fn()
	}()
}

func recoverPanic(name string, exit bool) {
	r := recover()
	if r == nil {
		return
	}
	monitoring.IncreasePanicCount()
	logx.Error("PANIC", "Panic in ", name, ": ", r, "\n", string(debug.Stack()))
	if exit {
		os.Exit(1)
	}
}
