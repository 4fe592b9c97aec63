package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/neoirq/runtime/riscv/neorv32"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets
var ErrTargetNotFound = errors.New("target not found")

// features maps the feature names used in targets.yaml to SYSINFO SOC bits.
var features = map[string]uint{
	"bootloader": neorv32.SocBootloader,
	"imem":       neorv32.SocImem,
	"dmem":       neorv32.SocDmem,
	"gpio":       neorv32.SocIoGpio,
	"mtime":      neorv32.SocIoMtime,
	"uart0":      neorv32.SocIoUart0,
	"uart1":      neorv32.SocIoUart1,
	"spi":        neorv32.SocIoSpi,
	"twi":        neorv32.SocIoTwi,
	"gptmr":      neorv32.SocIoGptmr,
	"dma":        neorv32.SocIoDma,
	"xirq":       neorv32.SocIoXirq,
	"firqcb":     neorv32.SocIoFirqCb,
}

func All() Targets {
	return targets
}

type Targets []TargetInfo
type TargetInfo struct {
	Name         string   `yaml:"name"`
	Aliases      []string `yaml:"aliases"`
	Clock        uint32   `yaml:"clock"`
	Features     []string `yaml:"features"`
	SysinfoBase  uint64   `yaml:"sysinfo"`
	XirqBase     uint64   `yaml:"xirq"`
	FirqCbBase   uint64   `yaml:"firqcb"`
	XirqChannels int      `yaml:"xirqChannels"`
	XirqFirq     uint8    `yaml:"xirqFirq"`
	Sources      []string `yaml:"sources"`
}

// SocWord is the SYSINFO SOC value of the target.
func (t TargetInfo) SocWord() uint32 {
	var soc uint32
	for _, feature := range t.Features {
		if bit, ok := features[feature]; ok {
			soc |= 1 << bit
		}
	}
	return soc
}

func (t TargetInfo) Has(feature string) bool {
	return slices.Contains(t.Features, feature)
}

// Source returns the crossbar input index of the named interrupt source.
func (t TargetInfo) Source(name string) (uint8, error) {
	if i := slices.Index(t.Sources, strings.ToLower(name)); i >= 0 {
		return uint8(i), nil
	}
	return 0, fmt.Errorf("unknown interrupt source %q on %s", name, t.Name)
}

func (t Targets) FindByName(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Name == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: %s", ErrTargetNotFound, name)
}

func (t Targets) FindByAlias(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Aliases, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: %s", ErrTargetNotFound, name)
}

// Find looks name up as a target name first and as an alias second.
func (t Targets) Find(name string) (TargetInfo, error) {
	if target, err := t.FindByName(name); err == nil {
		return target, nil
	}
	return t.FindByAlias(name)
}

func init() {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(rawTargets, &t); err != nil {
		panic(err)
	}

	targets = t.Elements
}
