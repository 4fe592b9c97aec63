// Package routing loads crossbar routing plans and programs them into a FIRQ
// crossbar.
//
// A plan is a YAML document:
//
//	target: neorv32-xirq32
//	routes:
//	  - channel: 0
//	    source: uart0_rx
//	    enabled: true
//	    protection: 1
package routing

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gopkg.in/yaml.v3"

	"omibyte.io/neoirq/peripheral"
	"omibyte.io/neoirq/peripheral/firqcb"
	"omibyte.io/neoirq/targets"
)

// channelNode offsets channel node IDs past every possible source ID.
const channelNode = firqcb.NumSources

type Route struct {
	Channel    int    `yaml:"channel"`
	Source     string `yaml:"source"`
	Enabled    bool   `yaml:"enabled"`
	Protection int    `yaml:"protection"`
}

type Plan struct {
	Target string  `yaml:"target"`
	Routes []Route `yaml:"routes"`
}

func Load(r io.Reader) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Join(peripheral.ErrInvalidConfig, err)
	}
	return &p, nil
}

func LoadFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Graph returns the plan as a directed graph with an edge from every source to
// each channel it is routed to. Routes that do not validate are left out.
func (p *Plan) Graph(target targets.TargetInfo) *simple.DirectedGraph {
	g, _ := p.build(target)
	return g
}

// Validate checks every route against target. Each channel can carry a single
// source. All problems are reported together.
func (p *Plan) Validate(target targets.TargetInfo) error {
	_, err := p.build(target)
	return err
}

func (p *Plan) build(target targets.TargetInfo) (*simple.DirectedGraph, error) {
	g := simple.NewDirectedGraph()
	var errs []error

	for i, route := range p.Routes {
		if route.Channel < 0 || route.Channel >= firqcb.NumChannels {
			errs = append(errs, fmt.Errorf("route %d: channel %d out of range", i, route.Channel))
			continue
		}
		if route.Protection < int(firqcb.Level0) || route.Protection > int(firqcb.Level3) {
			errs = append(errs, fmt.Errorf("route %d: protection level %d out of range", i, route.Protection))
			continue
		}
		src, err := target.Source(route.Source)
		if err != nil {
			errs = append(errs, fmt.Errorf("route %d: %w", i, err))
			continue
		}

		ch := simple.Node(channelNode + route.Channel)
		if g.To(ch.ID()).Len() > 0 {
			errs = append(errs, fmt.Errorf("route %d: channel %d routed more than once", i, route.Channel))
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(src), T: ch})
	}

	if len(errs) > 0 {
		return g, errors.Join(append([]error{peripheral.ErrInvalidConfig}, errs...)...)
	}
	return g, nil
}

// Apply validates the plan and programs cb. Channel assignment and protection
// are written before any channel is enabled.
func (p *Plan) Apply(cb *firqcb.Crossbar, target targets.TargetInfo) error {
	if err := p.Validate(target); err != nil {
		return err
	}

	for _, route := range p.Routes {
		src, _ := target.Source(route.Source)
		if err := cb.DisableChannel(route.Channel); err != nil {
			return err
		}
		if err := cb.Assign(route.Channel, src); err != nil {
			return err
		}
		if err := cb.SetProtection(route.Channel, firqcb.Level(route.Protection)); err != nil {
			return err
		}
	}

	for _, route := range p.Routes {
		if route.Enabled {
			if err := cb.EnableChannel(route.Channel); err != nil {
				return err
			}
		}
	}
	return nil
}

// Fanout returns the channels each routed source feeds, keyed by source name.
func (p *Plan) Fanout(target targets.TargetInfo) map[string][]int {
	g := p.Graph(target)
	fanout := map[string][]int{}

	nodes := g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		if id >= channelNode {
			continue
		}
		fanout[target.Sources[id]] = channels(g.From(id))
	}
	return fanout
}

func channels(nodes graph.Nodes) []int {
	var result []int
	for nodes.Next() {
		result = append(result, int(nodes.Node().ID()-channelNode))
	}
	slices.Sort(result)
	return result
}
