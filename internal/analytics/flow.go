package analytics

import (
	"strings"

	"github.com/AI2HU/geodash/internal/models"
)

// Flow graph truncation limits, applied in first-seen order
const (
	FlowTopicLimit     = 10
	FlowPromptLimit    = 20
	FlowURLLimit       = 15
	FlowPromptNameSize = 50
	FlowURLNameSize    = 40
)

// FlowGraph builds the topic -> prompt -> url Sankey input.
// Topic to prompt links are weighted by prompt volume, 1 when absent.
// URL nodes are flagged owned when their domain contains ownedDomain.
func FlowGraph(prompts []models.URLPromptRecord, cited []models.CitedPageRecord, ownedDomain string) models.FlowGraph {
	g := &flowBuilder{
		nodes: []models.FlowNode{},
		links: []models.FlowLink{},
		index: make(map[string]int),
	}

	for _, p := range prompts {
		if p.Topic == "" || g.has(flowKey(models.FlowTopic, p.Topic)) {
			continue
		}
		if g.topics == FlowTopicLimit {
			break
		}
		g.node(flowKey(models.FlowTopic, p.Topic), models.FlowNode{Name: p.Topic, Type: models.FlowTopic})
		g.topics++
	}

	for _, p := range head(prompts, FlowPromptLimit) {
		if p.Prompt == "" {
			continue
		}
		target := g.node(flowKey(models.FlowPrompt, p.Prompt), models.FlowNode{
			Name: truncate(p.Prompt, FlowPromptNameSize),
			Type: models.FlowPrompt,
		})

		if source, ok := g.index[flowKey(models.FlowTopic, p.Topic)]; ok {
			weight := p.Volume
			if weight == 0 {
				weight = 1
			}
			g.links = append(g.links, models.FlowLink{Source: source, Target: target, Value: weight})
		}
	}

	owned := strings.ToLower(ownedDomain)
	for _, c := range headCited(cited, FlowURLLimit) {
		if c.URL == "" {
			continue
		}
		g.node(flowKey(models.FlowURL, c.URL), models.FlowNode{
			Name:  truncate(c.URL, FlowURLNameSize),
			Type:  models.FlowURL,
			Owned: owned != "" && strings.Contains(strings.ToLower(c.Domain), owned),
		})
	}

	return models.FlowGraph{Nodes: g.nodes, Links: g.links}
}

type flowBuilder struct {
	nodes  []models.FlowNode
	links  []models.FlowLink
	index  map[string]int
	topics int
}

func (g *flowBuilder) has(key string) bool {
	_, ok := g.index[key]
	return ok
}

// node returns the index of key, appending n when the key is new
func (g *flowBuilder) node(key string, n models.FlowNode) int {
	if i, ok := g.index[key]; ok {
		return i
	}
	g.index[key] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return len(g.nodes) - 1
}

func flowKey(t models.FlowNodeType, name string) string {
	return string(t) + ":" + name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func head(rows []models.URLPromptRecord, n int) []models.URLPromptRecord {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func headCited(rows []models.CitedPageRecord, n int) []models.CitedPageRecord {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
