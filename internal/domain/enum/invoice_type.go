package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceType selects which product price list applies to an invoice
type InvoiceType int

const (
	InvoiceTypeRetail    InvoiceType = 0
	InvoiceTypeWholesale InvoiceType = 1
	InvoiceTypeEcommerce InvoiceType = 2
)

func (t InvoiceType) String() string {
	return [...]string{"retail", "wholesale", "ecommerce"}[t]
}

// Valid reports whether the value is one of the defined invoice types
func (t InvoiceType) Valid() bool {
	return t >= InvoiceTypeRetail && t <= InvoiceTypeEcommerce
}

// CodeTag returns the tag embedded in generated invoice codes
func (t InvoiceType) CodeTag() string {
	switch t {
	case InvoiceTypeWholesale:
		return "SI"
	case InvoiceTypeEcommerce:
		return "EC"
	default:
		return "LE"
	}
}

func (t InvoiceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *InvoiceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = InvoiceType(i)
		return nil
	}
	switch str {
	case "retail":
		*t = InvoiceTypeRetail
	case "wholesale":
		*t = InvoiceTypeWholesale
	case "ecommerce":
		*t = InvoiceTypeEcommerce
	default:
		// Unknown names decode to an out-of-range value so Valid() rejects them
		*t = InvoiceType(-1)
	}
	return nil
}

func (t InvoiceType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *InvoiceType) Scan(value interface{}) error {
	if value == nil {
		*t = InvoiceTypeRetail
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = InvoiceType(v)
	case int:
		*t = InvoiceType(v)
	}
	return nil
}
