package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus tracks the approval sub-state of an advance or due payment.
// It moves independently of the order status.
type PaymentStatus int

const (
	PaymentStatusPending         PaymentStatus = 0
	PaymentStatusSentForApproval PaymentStatus = 1
	PaymentStatusApproved        PaymentStatus = 2
	PaymentStatusRejected        PaymentStatus = 3
)

var paymentStatusNames = [...]string{
	"Pending",
	"SentForApproval",
	"Approved",
	"Rejected",
}

func (s PaymentStatus) String() string {
	if s < PaymentStatusPending || int(s) >= len(paymentStatusNames) {
		return "Unknown"
	}
	return paymentStatusNames[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	for i, name := range paymentStatusNames {
		if name == str {
			*s = PaymentStatus(i)
			return nil
		}
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
