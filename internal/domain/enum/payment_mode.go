package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMode is how a buyer settled a sale
type PaymentMode string

const (
	PaymentModeCash     PaymentMode = "cash"
	PaymentModeMomo     PaymentMode = "momo"
	PaymentModeCheque   PaymentMode = "cheque"
	PaymentModeTransfer PaymentMode = "transfer"
)

// PaymentModes lists every accepted mode in display order
func PaymentModes() []PaymentMode {
	return []PaymentMode{PaymentModeCash, PaymentModeMomo, PaymentModeCheque, PaymentModeTransfer}
}

// ParsePaymentMode normalises s and checks it is a known mode
func ParsePaymentMode(s string) (PaymentMode, error) {
	m := PaymentMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown payment mode %q", s)
	}
	return m, nil
}

func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeMomo, PaymentModeCheque, PaymentModeTransfer:
		return true
	}
	return false
}

func (m PaymentMode) String() string {
	return string(m)
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = PaymentModeCash
	case string:
		*m = PaymentMode(v)
	case []byte:
		*m = PaymentMode(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMode", value)
	}
	return nil
}
