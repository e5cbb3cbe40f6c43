package analysis

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"content-analysis/nlp"
	"content-analysis/types"
)

const (
	// entities saturate relevance after two mentions, keywords after five
	entityRelevanceScale  = 2.0
	keywordRelevanceScale = 5.0
)

var taggableEntityLabels = map[string]bool{
	nlp.LabelPerson:    true,
	nlp.LabelOrg:       true,
	nlp.LabelGPE:       true,
	nlp.LabelLoc:       true,
	nlp.LabelProduct:   true,
	nlp.LabelEvent:     true,
	nlp.LabelWorkOfArt: true,
	nlp.LabelLaw:       true,
}

var keywordPOS = map[string]bool{
	nlp.PosNoun:       true,
	nlp.PosProperNoun: true,
	nlp.PosAdjective:  true,
}

// TagOptions are the per-request knobs of GenerateTags.
type TagOptions struct {
	Title        string
	ExistingTags []string
	MaxTags      int
}

// Tagger suggests tags from named entities and frequent keywords.
type Tagger struct {
	annotator nlp.Annotator
	observer  Observer
}

func NewTagger(annotator nlp.Annotator, observer Observer) *Tagger {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Tagger{annotator: annotator, observer: observer}
}

// counted is a term with its occurrence count, kept in first-seen order.
type counted struct {
	text  string
	label string
	count int
}

// orderedCounter counts terms by key and remembers the first surface form.
type orderedCounter struct {
	index map[string]int
	items []*counted
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{index: make(map[string]int)}
}

func (c *orderedCounter) add(key, text, label string) {
	if i, ok := c.index[key]; ok {
		c.items[i].count++
		return
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, &counted{text: text, label: label, count: 1})
}

// top returns up to n items by descending count; ties keep first-seen order.
func (c *orderedCounter) top(n int) []*counted {
	ranked := make([]*counted, len(c.items))
	copy(ranked, c.items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// GenerateTags annotates the text (title weighted twice) and ranks entity
// and keyword tags by relevance.
func (t *Tagger) GenerateTags(ctx context.Context, text string, opts TagOptions) (types.TagReport, error) {
	combined := text
	if opts.Title != "" {
		combined = opts.Title + " " + opts.Title + " " + text
	}

	start := time.Now()
	doc, err := t.annotator.Annotate(ctx, combined)
	if err := observe(t.observer, CapabilityAnnotate, start, err); err != nil {
		return types.TagReport{}, err
	}

	entities := newOrderedCounter()
	for _, ent := range doc.Entities {
		if !taggableEntityLabels[ent.Label] {
			continue
		}
		entities.add(strings.ToLower(ent.Text), ent.Text, ent.Label)
	}

	keywords := newOrderedCounter()
	for _, tok := range doc.Tokens {
		if !tok.IsAlpha || tok.IsStop || !keywordPOS[tok.POS] {
			continue
		}
		word := strings.ToLower(tok.Text)
		keywords.add(word, word, "")
	}

	maxTags := max(opts.MaxTags, 0)
	half := maxTags / 2
	tags := make([]types.Tag, 0, 2*half)
	taken := make(map[string]bool)
	for _, e := range entities.top(half) {
		tags = append(tags, types.Tag{
			Tag:        e.text,
			Type:       types.TagTypeEntity,
			EntityType: e.label,
			Relevance:  min(float64(e.count)/entityRelevanceScale, 1.0),
		})
		taken[strings.ToLower(e.text)] = true
	}
	for _, k := range keywords.top(half) {
		if taken[k.text] {
			continue
		}
		tags = append(tags, types.Tag{
			Tag:       k.text,
			Type:      types.TagTypeKeyword,
			Relevance: min(float64(k.count)/keywordRelevanceScale, 1.0),
		})
		taken[k.text] = true
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Relevance > tags[j].Relevance
	})
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	existing := make(map[string]bool, len(opts.ExistingTags))
	for _, tag := range opts.ExistingTags {
		existing[strings.ToLower(tag)] = true
	}
	isType := func(typ types.TagType) func(types.Tag, int) bool {
		return func(tag types.Tag, _ int) bool { return tag.Type == typ }
	}

	return types.TagReport{
		SuggestedTags: tags,
		NewTags: lo.Filter(tags, func(tag types.Tag, _ int) bool {
			return !existing[strings.ToLower(tag.Tag)]
		}),
		CategorizedTags: types.CategorizedTags{
			Entities: lo.Filter(tags, isType(types.TagTypeEntity)),
			Keywords: lo.Filter(tags, isType(types.TagTypeKeyword)),
		},
		TagCount: len(tags),
	}, nil
}
