package analytics

import "github.com/AI2HU/geodash/internal/models"

// HierarchyRoot is the name of the sunburst root node
const HierarchyRoot = "root"

// CategoryHierarchy groups concept rows into category -> subcategory -> concept.
// Nodes keep first-seen order; repeated concepts within a subcategory are summed.
func CategoryHierarchy(rows []models.ConceptMentionRecord) *models.HierarchyNode {
	root := &models.HierarchyNode{Name: HierarchyRoot, Children: []*models.HierarchyNode{}}
	index := make(map[*models.HierarchyNode]map[string]*models.HierarchyNode)

	for _, row := range rows {
		cat := child(root, orDefault(row.ConceptCategory, DefaultCategory), index)
		sub := child(cat, orDefault(row.ConceptSubcategory, DefaultSubcategory), index)
		leaf := child(sub, orDefault(row.Concept, DefaultConcept), index)

		if leaf.Sentiment == nil {
			leaf.Sentiment = &models.SentimentTriple{}
		}
		leaf.Value += row.Mentions
		leaf.Sentiment.Positive += row.SentimentPositive
		leaf.Sentiment.Negative += row.SentimentNegative
		leaf.Sentiment.Neutral += row.SentimentNeutral
	}

	return root
}

func child(parent *models.HierarchyNode, name string, index map[*models.HierarchyNode]map[string]*models.HierarchyNode) *models.HierarchyNode {
	byName, ok := index[parent]
	if !ok {
		byName = make(map[string]*models.HierarchyNode)
		index[parent] = byName
	}
	if n, ok := byName[name]; ok {
		return n
	}
	n := &models.HierarchyNode{Name: name}
	byName[name] = n
	parent.Children = append(parent.Children, n)
	return n
}
