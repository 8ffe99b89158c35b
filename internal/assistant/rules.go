package assistant

import (
	"context"
	"strings"
)

// rulesResponder answers from a fixed topic table: the first rule with
// a keyword contained in the utterance wins, otherwise the default
// reply. The paper context is not consulted for matching; that is a
// documented simplification of this provider, not of the Responder
// contract.
type rulesResponder struct{}

func init() {
	Register("rules", func(args interface{}) (Responder, error) {
		_ = args
		return &rulesResponder{}, nil
	})
}

type rule struct {
	keywords []string
	reply    string
}

var ruleTable = []rule{
	{
		keywords: []string{"research", "topic"},
		reply:    "Based on your paper's focus on quantum computing and machine learning, you might consider researching quantum feature maps, variational quantum circuits, or quantum advantage in specific ML tasks. Recent papers have shown promising results in these areas.",
	},
	{
		keywords: []string{"explain", "concept"},
		reply:    "I'd be happy to explain a concept. Quantum machine learning combines quantum computing principles with machine learning algorithms. The key advantage is that quantum computers can process certain types of information exponentially faster than classical computers, potentially leading to breakthroughs in model training and inference.",
	},
	{
		keywords: []string{"citation", "reference"},
		reply:    "I recommend citing 'Quantum Machine Learning: A Review and Suggestions for Future Research' by Biamonte et al. (2017) and 'Supervised learning with quantum-enhanced feature spaces' by Havlíček et al. (2019). Both are foundational papers in the field of quantum machine learning.",
	},
	{
		keywords: []string{"plagiarism", "similarity"},
		reply:    "To avoid plagiarism, make sure to properly cite all sources, paraphrase effectively rather than copying text directly, and use plagiarism checking tools before finalizing your paper. I can help review specific sections if you'd like.",
	},
}

const defaultReply = "I'm your research assistant for this paper. I can help with finding relevant research, explaining concepts, suggesting citations, or improving your writing. What specific aspect of your paper would you like assistance with?"

func (r *rulesResponder) Respond(ctx context.Context, utterance string, paperContext string) (string, error) {
	_ = ctx
	_ = paperContext
	lower := strings.ToLower(utterance)
	for _, rule := range ruleTable {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.reply, nil
			}
		}
	}
	return defaultReply, nil
}
