package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the payment state of an invoice. Both states are
// stable and reachable from each other; there are no automatic transitions.
type InvoiceStatus int

const (
	InvoiceStatusPaid InvoiceStatus = 0
	InvoiceStatusDebt InvoiceStatus = 1
)

func (s InvoiceStatus) String() string {
	return [...]string{"paid", "debt"}[s]
}

// Valid reports whether the value is one of the defined statuses
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusDebt
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "paid":
		*s = InvoiceStatusPaid
	case "debt":
		*s = InvoiceStatusDebt
	default:
		// Unknown names decode to an out-of-range value so Valid() rejects them
		*s = InvoiceStatus(-1)
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
