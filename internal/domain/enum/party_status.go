package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PartyStatus represents the registration state of a customer party.
// Orders may only be placed against approved parties.
type PartyStatus int

const (
	PartyStatusSentForApproval PartyStatus = 0
	PartyStatusApproved        PartyStatus = 1
	PartyStatusRejected        PartyStatus = 2
)

var partyStatusNames = [...]string{
	"SentForApproval",
	"Approved",
	"Rejected",
}

func (s PartyStatus) String() string {
	if s < PartyStatusSentForApproval || int(s) >= len(partyStatusNames) {
		return "Unknown"
	}
	return partyStatusNames[s]
}

func (s PartyStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PartyStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PartyStatus(i)
		return nil
	}
	for i, name := range partyStatusNames {
		if name == str {
			*s = PartyStatus(i)
			return nil
		}
	}
	return nil
}

func (s PartyStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PartyStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PartyStatusSentForApproval
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PartyStatus(v)
	case int:
		*s = PartyStatus(v)
	}
	return nil
}
