package notice

import "fmt"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Toast is a transient message shown in the page corner.
type Toast struct {
	Message string `json:"message"`
	Kind    Kind   `json:"type"`
}

func Success(format string, args ...any) Toast { return newToast(KindSuccess, format, args) }
func Error(format string, args ...any) Toast   { return newToast(KindError, format, args) }
func Warning(format string, args ...any) Toast { return newToast(KindWarning, format, args) }
func Info(format string, args ...any) Toast    { return newToast(KindInfo, format, args) }

func newToast(k Kind, format string, args []any) Toast {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return Toast{Message: format, Kind: k}
}

// Redirect asks the page to navigate to To after DelayMS milliseconds.
type Redirect struct {
	To      string `json:"to"`
	DelayMS int    `json:"delayMs"`
}
