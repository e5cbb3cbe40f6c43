package nlp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"

	languagev1 "cloud.google.com/go/language/apiv1"
	languagev1pb "cloud.google.com/go/language/apiv1/languagepb"
	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrRejectedText is returned when a model refuses the text itself (for
// example an unsupported language), as opposed to being unreachable.
var ErrRejectedText = errors.New("text rejected by model")

// neutralBand is the score range Google sentences are counted as neutral in.
const neutralBand = 0.05

// GoogleBackend provides every capability on top of Cloud Natural Language.
// Sentiment comes from the v2 API; syntax is only available in v1.
type GoogleBackend struct {
	sentiment *language.Client
	syntax    *languagev1.Client
	stopWords StopWords
}

// NewGoogleBackend builds both language clients from base64 encoded
// service account credentials.
func NewGoogleBackend(ctx context.Context, encodedCreds string) (*GoogleBackend, error) {
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("decode natural language credentials: %w", err)
	}

	opt := option.WithCredentialsJSON(creds)
	sentimentClient, err := language.NewClient(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("create natural language client: %w", err)
	}
	syntaxClient, err := languagev1.NewClient(ctx, opt)
	if err != nil {
		sentimentClient.Close()
		return nil, fmt.Errorf("create natural language v1 client: %w", err)
	}

	return &GoogleBackend{
		sentiment: sentimentClient,
		syntax:    syntaxClient,
		stopWords: EnglishStopWords(),
	}, nil
}

func (g *GoogleBackend) Close() error {
	return errors.Join(g.sentiment.Close(), g.syntax.Close())
}

func (g *GoogleBackend) analyzeSentiment(ctx context.Context, text string) (*languagepb.AnalyzeSentimentResponse, error) {
	req := &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := g.sentiment.AnalyzeSentiment(ctx, req)
	if err != nil {
		return nil, googleError("AnalyzeSentiment", err)
	}
	return resp, nil
}

// ScoreSentiment uses the document score as the compound score. The
// proportions are the share of sentences that are positive, negative or
// neutral. Blank text scores like a document without sentences.
func (g *GoogleBackend) ScoreSentiment(ctx context.Context, text string) (Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return sentimentFrom(&languagepb.AnalyzeSentimentResponse{}), nil
	}
	resp, err := g.analyzeSentiment(ctx, text)
	if err != nil {
		return Sentiment{}, err
	}

	return sentimentFrom(resp), nil
}

// ScorePolarity reads subjectivity off the magnitude, averaged per sentence.
func (g *GoogleBackend) ScorePolarity(ctx context.Context, text string) (Polarity, error) {
	if strings.TrimSpace(text) == "" {
		return Polarity{}, nil
	}
	resp, err := g.analyzeSentiment(ctx, text)
	if err != nil {
		return Polarity{}, err
	}

	return polarityFrom(resp), nil
}

func (g *GoogleBackend) SplitSentences(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	resp, err := g.analyzeSentiment(ctx, text)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(resp.GetSentences()))
	for _, s := range resp.GetSentences() {
		out = append(out, s.GetText().GetContent())
	}
	return out, nil
}

// Annotate runs syntax and entity analysis in one call. Every proper-name
// mention becomes its own Entity, ordered by position in the text.
func (g *GoogleBackend) Annotate(ctx context.Context, text string) (Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return Annotation{}, nil
	}
	req := &languagev1pb.AnnotateTextRequest{
		Document: &languagev1pb.Document{
			Source: &languagev1pb.Document_Content{
				Content: text,
			},
			Type: languagev1pb.Document_PLAIN_TEXT,
		},
		Features: &languagev1pb.AnnotateTextRequest_Features{
			ExtractSyntax:   true,
			ExtractEntities: true,
		},
		EncodingType: languagev1pb.EncodingType_UTF8,
	}

	resp, err := g.syntax.AnnotateText(ctx, req)
	if err != nil {
		return Annotation{}, googleError("AnnotateText", err)
	}
	return convertAnnotation(resp, g.stopWords), nil
}

// Probe sends a one word document through sentiment analysis.
func (g *GoogleBackend) Probe(ctx context.Context) error {
	_, err := g.analyzeSentiment(ctx, "ping")
	return err
}

func sentimentFrom(resp *languagepb.AnalyzeSentimentResponse) Sentiment {
	out := Sentiment{Compound: float64(resp.GetDocumentSentiment().GetScore())}
	sentences := resp.GetSentences()
	if len(sentences) == 0 {
		out.Neutral = 1
		return out
	}

	var pos, neg int
	for _, s := range sentences {
		score := float64(s.GetSentiment().GetScore())
		switch {
		case score > neutralBand:
			pos++
		case score < -neutralBand:
			neg++
		}
	}
	total := float64(len(sentences))
	out.Positive = float64(pos) / total
	out.Negative = float64(neg) / total
	out.Neutral = 1 - out.Positive - out.Negative
	return out
}

func polarityFrom(resp *languagepb.AnalyzeSentimentResponse) Polarity {
	doc := resp.GetDocumentSentiment()
	sentences := max(len(resp.GetSentences()), 1)
	return Polarity{
		Polarity:     clamp(float64(doc.GetScore()), -1, 1),
		Subjectivity: clamp(float64(doc.GetMagnitude())/float64(sentences), 0, 1),
	}
}

type positionedEntity struct {
	offset int32
	entity Entity
}

func convertAnnotation(resp *languagev1pb.AnnotateTextResponse, stopWords StopWords) Annotation {
	var mentions []positionedEntity
	for _, e := range resp.GetEntities() {
		label := entityLabel(e.GetType())
		for _, m := range e.GetMentions() {
			if m.GetType() != languagev1pb.EntityMention_PROPER {
				continue
			}
			mentions = append(mentions, positionedEntity{
				offset: m.GetText().GetBeginOffset(),
				entity: Entity{Text: m.GetText().GetContent(), Label: label},
			})
		}
	}
	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].offset < mentions[j].offset
	})

	out := Annotation{
		Entities: make([]Entity, 0, len(mentions)),
		Tokens:   make([]Token, 0, len(resp.GetTokens())),
	}
	for _, m := range mentions {
		out.Entities = append(out.Entities, m.entity)
	}
	for _, t := range resp.GetTokens() {
		word := t.GetText().GetContent()
		out.Tokens = append(out.Tokens, Token{
			Text:    word,
			IsAlpha: IsAlpha(word),
			IsStop:  stopWords.Contains(word),
			POS:     posTag(t.GetPartOfSpeech()),
		})
	}
	return out
}

func entityLabel(t languagev1pb.Entity_Type) string {
	switch t {
	case languagev1pb.Entity_PERSON:
		return LabelPerson
	case languagev1pb.Entity_ORGANIZATION:
		return LabelOrg
	case languagev1pb.Entity_LOCATION:
		return LabelLoc
	case languagev1pb.Entity_EVENT:
		return LabelEvent
	case languagev1pb.Entity_WORK_OF_ART:
		return LabelWorkOfArt
	case languagev1pb.Entity_CONSUMER_GOOD:
		return LabelProduct
	default:
		return t.String()
	}
}

func posTag(p *languagev1pb.PartOfSpeech) string {
	switch p.GetTag() {
	case languagev1pb.PartOfSpeech_NOUN:
		if p.GetProper() == languagev1pb.PartOfSpeech_PROPER {
			return PosProperNoun
		}
		return PosNoun
	case languagev1pb.PartOfSpeech_ADJ:
		return PosAdjective
	default:
		return p.GetTag().String()
	}
}

func googleError(op string, err error) error {
	if status.Code(err) == codes.InvalidArgument {
		return fmt.Errorf("%s: %w: %v", op, ErrRejectedText, err)
	}
	return fmt.Errorf("%s error: %w", op, err)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
