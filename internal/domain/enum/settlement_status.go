package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SettlementStatus tracks whether a credit or debit is still owed
type SettlementStatus int

const (
	SettlementOpen    SettlementStatus = 0
	SettlementSettled SettlementStatus = 1
)

func (s SettlementStatus) String() string {
	names := [...]string{"Open", "Settled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Open"
	}
	return names[s]
}

func (s SettlementStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SettlementStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SettlementStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = SettlementOpen
	case "Settled":
		*s = SettlementSettled
	}
	return nil
}

func (s SettlementStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SettlementStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SettlementOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SettlementStatus(v)
	case int:
		*s = SettlementStatus(v)
	}
	return nil
}
