package svd

import (
	"encoding/xml"
	"strconv"
	"strings"
)

type Integer uint64

func (h *Integer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) (err error) {
	var v string
	d.DecodeElement(&v, &start)

	var value uint64
	if s, ok := strings.CutPrefix(strings.ToLower(v), "0x"); ok {
		value, err = strconv.ParseUint(s, 16, 64)
	} else {
		value, err = strconv.ParseUint(v, 10, 64)
	}

	if err != nil {
		return err
	}
	*h = Integer(value)
	return nil
}

// MarshalXML writes addresses, offsets and masks in hex and everything below
// 16 in decimal.
func (h Integer) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if h < 16 {
		return e.EncodeElement(strconv.FormatUint(uint64(h), 10), start)
	}
	return e.EncodeElement("0x"+strings.ToUpper(strconv.FormatUint(uint64(h), 16)), start)
}
