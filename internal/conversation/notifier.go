package conversation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottoorder/internal/domain"
	"github.com/hammamikhairi/ottoorder/internal/logger"
)

var _ domain.Notifier = (*CLINotifier)(nil)

var (
	replyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// PrintFunc prints one formatted line, like fmt.Printf with a trailing newline.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes assistant replies to a terminal. In plain mode the
// text is passed through unstyled, for UIs that style it themselves.
type CLINotifier struct {
	log    *logger.Logger
	out    PrintFunc
	urgent PrintFunc
	plain  bool
}

// NotifierOption configures a CLINotifier.
type NotifierOption func(*CLINotifier)

// WithUrgentPrint sends NotifyUrgent output to its own printer, so a UI
// can show errors apart from replies.
func WithUrgentPrint(fn PrintFunc) NotifierOption {
	return func(n *CLINotifier) {
		if fn != nil {
			n.urgent = fn
		}
	}
}

// NewCLINotifier creates a terminal notifier printing to stdout when
// out is nil. Urgent messages share out unless WithUrgentPrint is given.
func NewCLINotifier(log *logger.Logger, out PrintFunc, plain bool, opts ...NotifierOption) *CLINotifier {
	if out == nil {
		out = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	n := &CLINotifier{log: log, out: out, urgent: out, plain: plain}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify prints an assistant reply.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("reply: %q", message)
	n.emit(n.out, replyStyle, "", message)
	return nil
}

// NotifyUrgent prints an error the user must see.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("urgent: %q", message)
	n.emit(n.urgent, urgentStyle, "! ", message)
	return nil
}

func (n *CLINotifier) emit(to PrintFunc, style lipgloss.Style, plainPrefix, message string) {
	if n.plain {
		to("%s%s", plainPrefix, message)
		return
	}
	to("%s", style.Render(message))
}
