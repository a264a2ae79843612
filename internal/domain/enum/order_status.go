package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents where an order sits in the fulfillment workflow
type OrderStatus int

const (
	OrderStatusPlaced                 OrderStatus = 0
	OrderStatusForwardedToAuthorizer  OrderStatus = 1
	OrderStatusWarehouseAssigned      OrderStatus = 2
	OrderStatusApproved               OrderStatus = 3
	OrderStatusForwardedToPlantHead   OrderStatus = 4
	OrderStatusDispatched             OrderStatus = 5
	OrderStatusDelivered              OrderStatus = 6
	OrderStatusCancelled              OrderStatus = 7
)

var orderStatusNames = [...]string{
	"Placed",
	"ForwardedToAuthorizer",
	"WarehouseAssigned",
	"Approved",
	"ForwardedToPlantHead",
	"Dispatched",
	"Delivered",
	"Cancelled",
}

func (s OrderStatus) String() string {
	if s < OrderStatusPlaced || int(s) >= len(orderStatusNames) {
		return "Unknown"
	}
	return orderStatusNames[s]
}

// IsTerminal reports whether no further transition can leave this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	for i, name := range orderStatusNames {
		if name == str {
			*s = OrderStatus(i)
			return nil
		}
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPlaced
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
