package notifier

import "log"

// Notifier receives the user-facing outcome of a mutation. The UI layer
// plugs in whatever it renders toasts with; the default just logs.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type Log struct{}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Success(message string) {
	log.Printf("notify success: %s", message)
}

func (l *Log) Error(message string) {
	log.Printf("notify error: %s", message)
}
