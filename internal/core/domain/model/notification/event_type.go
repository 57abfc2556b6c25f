package notification

import "strings"

// EventType classifies the domain events that flow through the notification
// topic. Parsing is fail-safe: an unrecognized name maps to UnknownEvent so
// a single producer with a newer catalog cannot wedge the consumer.
type EventType int

const (
	// UnknownEvent is the fail-safe bucket for unrecognized event names.
	UnknownEvent EventType = iota

	OrderCreated
	OrderConfirmed
	OrderCancelled
	PaymentSuccess
	PaymentFailed
	PaymentRefunded
	DeliveryAssigned
	DeliveryPicked
	DeliveryCompleted
)

type eventTypeSpec struct {
	name           string
	defaultMessage string
	priority       int
}

// Priority levels. Higher means the event is announced on more channels.
const (
	PriorityLow = iota + 1
	PriorityNormal
	PriorityHigh
)

func getEventTypeSpecs() map[EventType]eventTypeSpec {
	return map[EventType]eventTypeSpec{
		UnknownEvent:      {"UNKNOWN", "Something happened with your order.", PriorityLow},
		OrderCreated:      {"ORDER_CREATED", "Your order has been placed.", PriorityNormal},
		OrderConfirmed:    {"ORDER_CONFIRMED", "Your order has been confirmed by the restaurant.", PriorityNormal},
		OrderCancelled:    {"ORDER_CANCELLED", "Your order has been cancelled.", PriorityHigh},
		PaymentSuccess:    {"PAYMENT_SUCCESS", "Your payment was successful.", PriorityNormal},
		PaymentFailed:     {"PAYMENT_FAILED", "Your payment failed. Please try again.", PriorityHigh},
		PaymentRefunded:   {"PAYMENT_REFUNDED", "Your payment has been refunded.", PriorityHigh},
		DeliveryAssigned:  {"DELIVERY_ASSIGNED", "A rider has been assigned to your order.", PriorityLow},
		DeliveryPicked:    {"DELIVERY_PICKED", "Your order is on its way.", PriorityNormal},
		DeliveryCompleted: {"DELIVERY_COMPLETED", "Your order has been delivered. Enjoy!", PriorityNormal},
	}
}

// ParseEventType converts a wire-format event name to an EventType.
// Unknown names map to UnknownEvent rather than failing.
func ParseEventType(s string) EventType {
	name := strings.ToUpper(strings.TrimSpace(s))
	for eventType, spec := range getEventTypeSpecs() {
		if eventType != UnknownEvent && spec.name == name {
			return eventType
		}
	}
	return UnknownEvent
}

// String returns the wire-format name of the event type.
func (e EventType) String() string {
	if spec, ok := getEventTypeSpecs()[e]; ok {
		return spec.name
	}
	return "UNKNOWN"
}

// DefaultMessage returns the user-facing text used when the event carries
// no message of its own.
func (e EventType) DefaultMessage() string {
	if spec, ok := getEventTypeSpecs()[e]; ok {
		return spec.defaultMessage
	}
	return getEventTypeSpecs()[UnknownEvent].defaultMessage
}

// Priority returns the announcement priority of the event type.
func (e EventType) Priority() int {
	if spec, ok := getEventTypeSpecs()[e]; ok {
		return spec.priority
	}
	return PriorityLow
}
