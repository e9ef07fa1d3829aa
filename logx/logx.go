package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level, falling back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Options selects where log lines go. An empty Filename keeps stderr.
type Options struct {
	Filename   string
	MaxSizeMB  int
	MaxAgeDays int
	Level      string
}

var (
	level  atomic.Int32
	logger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

func init() {
	Configure(optionsFromEnv())
}

func optionsFromEnv() Options {
	opts := Options{Level: os.Getenv("LOG_LEVEL")}
	if logFile := os.Getenv("LOGFILE"); logFile != "" {
		opts.Filename = "./logs/" + logFile
	}
	opts.MaxSizeMB = envInt("LOGFILE_MAX_SIZE_MB", 100)
	opts.MaxAgeDays = envInt("LOGFILE_MAX_AGE_DAYS", 7)
	return opts
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Configure swaps the log destination and level threshold.
func Configure(opts Options) {
	var out io.Writer = os.Stderr
	if opts.Filename != "" {
		out = &lumberjack.Logger{
			Filename: opts.Filename,
			MaxSize:  opts.MaxSizeMB, // megabytes
			MaxAge:   opts.MaxAgeDays,
		}
	}
	logger.SetOutput(out)
	level.Store(int32(ParseLevel(opts.Level)))
}

// SetOutput redirects log lines, mostly useful in tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func SetLevel(l Level) {
	level.Store(int32(l))
}

func enabled(l Level) bool {
	return Level(level.Load()) <= l
}

func write(l Level, tag, color, category string, content []interface{}) {
	if !enabled(l) {
		return
	}
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[%s][%s]%s", color, tag, category, ColorReset)
	logger.Printf("%s: %s", coloredCategory, message)
}

func Info(category string, content ...interface{}) {
	write(LevelInfo, "INFO", ColorGreen, category, content)
}

func Error(category string, content ...interface{}) {
	write(LevelError, "ERROR", ColorRed, category, content)
}

func Warn(category string, content ...interface{}) {
	write(LevelWarn, "WARN", ColorYellow, category, content)
}

func Debug(category string, content ...interface{}) {
	write(LevelDebug, "DEBUG", ColorBlue, category, content)
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
