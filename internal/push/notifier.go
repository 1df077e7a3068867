package push

import (
	"errors"
	"fmt"
	"log/slog"

	"queueless/internal/model"
	"queueless/internal/store"
)

// Notifier fans a push notification out to every registered staff browser,
// pruning subscriptions the push service reports as gone.
type Notifier struct {
	service *Service
	subs    *store.PushStore
	logger  *slog.Logger
}

func NewNotifier(service *Service, subs *store.PushStore, logger *slog.Logger) *Notifier {
	return &Notifier{
		service: service,
		subs:    subs,
		logger:  logger.With("component", "push"),
	}
}

// NotifyNewOrder alerts the kitchen about a freshly placed order. Send
// failures are logged per subscription and never surfaced to the caller;
// the order is already in the queue.
func (n *Notifier) NotifyNewOrder(o *model.Order) {
	payload := Payload{
		Title: "New Order Received",
		Body:  fmt.Sprintf("Table %s: %s placed an order for $%.2f", o.TableNumber, o.CustomerName, o.Total),
		URL:   "/#/orders",
		Tag:   o.ID,
	}
	n.sendAll(payload)
}

func (n *Notifier) sendAll(payload Payload) {
	subs, err := n.subs.List()
	if err != nil {
		n.logger.Error("list push subscriptions", "error", err)
		return
	}

	for i := range subs {
		sub := &subs[i]
		err := n.service.Send(sub, payload)
		if errors.Is(err, ErrExpired) {
			if err := n.subs.Delete(sub.ID); err != nil {
				n.logger.Error("delete expired subscription", "id", sub.ID, "error", err)
			}
			continue
		}
		if err != nil {
			n.logger.Warn("send push", "id", sub.ID, "error", err)
		}
	}
}
