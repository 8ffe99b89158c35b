package citation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
)

type builtinConfig struct {
	DatasetPath string `json:"dataset_path"`
}

// builtinSource is a deterministic in-process citation index. It
// filters its dataset by query tokens against title, authors and venue
// and returns hits in dataset order.
type builtinSource struct {
	dataset []model.Citation
}

func init() {
	Register("builtin", createBuiltinSource)
}

func createBuiltinSource(args interface{}) (Source, error) {
	cfg := &builtinConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	dataset := defaultDataset
	if cfg.DatasetPath != "" {
		loaded, err := loadDataset(cfg.DatasetPath)
		if err != nil {
			return nil, err
		}
		dataset = loaded
	}
	return &builtinSource{dataset: dataset}, nil
}

func loadDataset(path string) ([]model.Citation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read citation dataset: %w", err)
	}
	var dataset []model.Citation
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("decode citation dataset: %w", err)
	}
	return dataset, nil
}

func (s *builtinSource) Search(ctx context.Context, query string, limit int) ([]model.Citation, error) {
	_ = ctx
	tokens := strings.Fields(strings.ToLower(query))
	results := make([]model.Citation, 0, limit)
	for _, c := range s.dataset {
		if len(tokens) == 0 || matchesAny(c, tokens) {
			results = append(results, c)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results, nil
}

func matchesAny(c model.Citation, tokens []string) bool {
	haystack := strings.ToLower(c.Title + " " + c.Authors + " " + c.Venue())
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

var defaultDataset = []model.Citation{
	{
		ID:      "c1",
		Title:   "Quantum machine learning",
		Authors: "Biamonte, J., Wittek, P., Pancotti, N., Rebentrost, P., Wiebe, N., & Lloyd, S.",
		Journal: "Nature",
		Year:    2017,
		Volume:  "549",
		Issue:   "7671",
		Pages:   "195-202",
		DOI:     "10.1038/nature23474",
	},
	{
		ID:      "c2",
		Title:   "Supervised learning with quantum-enhanced feature spaces",
		Authors: "Havlíček, V., Córcoles, A. D., Temme, K., Harrow, A. W., Kandala, A., Chow, J. M., & Gambetta, J. M.",
		Journal: "Nature",
		Year:    2019,
		Volume:  "567",
		Issue:   "7747",
		Pages:   "209-212",
		DOI:     "10.1038/s41586-019-0980-2",
	},
	{
		ID:      "c3",
		Title:   "An introduction to quantum machine learning",
		Authors: "Schuld, M., Sinayskiy, I., & Petruccione, F.",
		Journal: "Contemporary Physics",
		Year:    2015,
		Volume:  "56",
		Issue:   "2",
		Pages:   "172-185",
		DOI:     "10.1080/00107514.2014.964942",
	},
	{
		ID:      "c4",
		Title:   "Machine learning & artificial intelligence in the quantum domain: a review of recent progress",
		Authors: "Dunjko, V., & Briegel, H. J.",
		Journal: "Reports on Progress in Physics",
		Year:    2018,
		Volume:  "81",
		Issue:   "7",
		Pages:   "074001",
		DOI:     "10.1088/1361-6633/aab406",
	},
	{
		ID:      "c5",
		Title:   "Variational quantum algorithms",
		Authors: "Cerezo, M., Arrasmith, A., Babbush, R., Benjamin, S. C., Endo, S., Fujii, K., ... & Yuan, X.",
		Journal: "Nature Reviews Physics",
		Year:    2021,
		Volume:  "3",
		Issue:   "9",
		Pages:   "625-644",
		DOI:     "10.1038/s42254-021-00348-9",
	},
	{
		ID:      "c6",
		Title:   "Deep learning",
		Authors: "LeCun, Y., Bengio, Y., & Hinton, G.",
		Journal: "Nature",
		Year:    2015,
		Volume:  "521",
		Issue:   "7553",
		Pages:   "436-444",
		DOI:     "10.1038/nature14539",
	},
	{
		ID:         "c7",
		Title:      "Attention is all you need",
		Authors:    "Vaswani, A., Shazeer, N., Parmar, N., Uszkoreit, J., Jones, L., Gomez, A. N., Kaiser, L., & Polosukhin, I.",
		Conference: "Advances in Neural Information Processing Systems",
		Year:       2017,
		Pages:      "5998-6008",
	},
	{
		ID:      "c8",
		Title:   "Quantum supremacy using a programmable superconducting processor",
		Authors: "Arute, F., Arya, K., Babbush, R., et al.",
		Journal: "Nature",
		Year:    2019,
		Volume:  "574",
		Issue:   "7779",
		Pages:   "505-510",
		DOI:     "10.1038/s41586-019-1666-5",
	},
}
