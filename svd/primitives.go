// Package svd holds the CMSIS-SVD document model used to describe the
// register blocks of a target to debuggers.
package svd

import "encoding/xml"

type DeviceElement struct {
	XMLName          xml.Name           `xml:"device"`
	SchemaVersion    string             `xml:"schemaVersion,attr"`
	Name             string             `xml:"name"`
	Description      string             `xml:"description"`
	Series           string             `xml:"series,omitempty"`
	Version          string             `xml:"version"`
	Vendor           string             `xml:"vendor,omitempty"`
	CPU              CPUElement         `xml:"cpu"`
	AddressableWidth Integer            `xml:"addressUnitBits"`
	BitWidth         Integer            `xml:"width"`
	RegisterSize     Integer            `xml:"size"`
	DefaultAccess    string             `xml:"access"`
	ResetValue       Integer            `xml:"resetValue"`
	ResetMask        Integer            `xml:"resetMask"`
	Peripherals      PeripheralsElement `xml:"peripherals"`
}

type CPUElement struct {
	Name     string `xml:"name"`
	Revision string `xml:"revision"`
	Endian   string `xml:"endian"`
}

type PeripheralsElement struct {
	Elements []PeripheralElement `xml:"peripheral"`
}

func (p PeripheralsElement) Find(name string) (int, bool) {
	if len(name) > 0 {
		for i, pp := range p.Elements {
			if pp.Name == name {
				return i, true
			}
		}
	}
	return -1, false
}

type PeripheralElement struct {
	Name         string              `xml:"name"`
	Description  string              `xml:"description"`
	Group        string              `xml:"groupName,omitempty"`
	BaseAddress  Integer             `xml:"baseAddress"`
	AddressBlock AddressBlockElement `xml:"addressBlock"`
	Interrupts   []InterruptElement  `xml:"interrupt"`
	Registers    RegistersElement    `xml:"registers"`
}

type AddressBlockElement struct {
	Offset Integer `xml:"offset"`
	Size   Integer `xml:"size"`
	Usage  string  `xml:"usage"`
}

type InterruptElement struct {
	Name        string  `xml:"name"`
	Description string  `xml:"description"`
	Value       Integer `xml:"value"`
}

type RegistersElement struct {
	RegisterElements []RegisterElement `xml:"register"`
}

func (r RegistersElement) Find(name string) (int, bool) {
	for i, reg := range r.RegisterElements {
		if reg.Name == name {
			return i, true
		}
	}
	return -1, false
}

type RegisterElement struct {
	Name          string        `xml:"name"`
	Description   string        `xml:"description"`
	AddressOffset Integer       `xml:"addressOffset"`
	Size          Integer       `xml:"size"`
	Access        string        `xml:"access,omitempty"`
	Fields        FieldElements `xml:"fields"`
}

type FieldElements struct {
	Elements []FieldElement `xml:"field"`
}

type FieldElement struct {
	Name             string                   `xml:"name"`
	Description      string                   `xml:"description"`
	BitOffset        Integer                  `xml:"bitOffset"`
	BitWidth         Integer                  `xml:"bitWidth"`
	Access           string                   `xml:"access,omitempty"`
	EnumeratedValues *EnumeratedValuesElement `xml:"enumeratedValues,omitempty"`
}

type EnumeratedValuesElement struct {
	Name     string                   `xml:"name"`
	Elements []EnumeratedValueElement `xml:"enumeratedValue"`
}

type EnumeratedValueElement struct {
	Name        string  `xml:"name"`
	Description string  `xml:"description"`
	Value       Integer `xml:"value"`
}
