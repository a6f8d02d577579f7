package notification

import (
	"context"
	"log/slog"
)

const (
	// KindTransferSettled indicates a committed taxed transfer.
	KindTransferSettled = "transfer_settled"
	// KindPolicyUpdated indicates a policy field change.
	KindPolicyUpdated = "policy_updated"
	// KindSupplyMinted indicates new supply entering circulation.
	KindSupplyMinted = "supply_minted"
	// KindSupplyBurned indicates supply leaving circulation.
	KindSupplyBurned = "supply_burned"
)

// Message describes a notification payload. Attrs carries the structured
// event fields (gross/principal/cuts for transfers, field/value for policy
// changes).
type Message struct {
	Kind  string
	Attrs map[string]any
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	args := make([]any, 0, len(message.Attrs)*2+2)
	args = append(args, "kind", message.Kind)
	for k, v := range message.Attrs {
		args = append(args, k, v)
	}
	n.logger.Info("notification", args...)
	return nil
}
