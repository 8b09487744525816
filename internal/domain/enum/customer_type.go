package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CustomerType classifies a customer as a retail or wholesale buyer
type CustomerType int

const (
	CustomerTypeRetail    CustomerType = 0
	CustomerTypeWholesale CustomerType = 1
)

func (t CustomerType) String() string {
	return [...]string{"retail", "wholesale"}[t]
}

// Valid reports whether the value is one of the defined customer types
func (t CustomerType) Valid() bool {
	return t == CustomerTypeRetail || t == CustomerTypeWholesale
}

func (t CustomerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CustomerType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = CustomerType(i)
		return nil
	}
	switch str {
	case "retail":
		*t = CustomerTypeRetail
	case "wholesale":
		*t = CustomerTypeWholesale
	default:
		// Unknown names decode to an out-of-range value so Valid() rejects them
		*t = CustomerType(-1)
	}
	return nil
}

func (t CustomerType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *CustomerType) Scan(value interface{}) error {
	if value == nil {
		*t = CustomerTypeRetail
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = CustomerType(v)
	case int:
		*t = CustomerType(v)
	}
	return nil
}
