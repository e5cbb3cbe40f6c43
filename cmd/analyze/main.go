// Command analyze sends an article to a running content analysis service and
// prints the suggested tags or the sentiment summary as a table.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"content-analysis/types"
)

func main() {
	serviceURL := flag.String("url", "http://localhost:8080", "content analysis service base URL")
	file := flag.String("file", "", "file holding the article text (stdin when empty)")
	title := flag.String("title", "", "article title")
	mode := flag.String("mode", "tags", "tags or sentiment")
	maxTags := flag.Int("max-tags", 10, "maximum number of tags")
	existing := flag.String("existing", "", "comma separated tags the article already has")
	flag.Parse()

	text, err := readText(*file)
	if err != nil {
		log.Fatalf("Failed to read article: %v", err)
	}

	client := &http.Client{Timeout: 2 * time.Minute}
	base := strings.TrimRight(*serviceURL, "/")

	switch *mode {
	case "tags":
		req := types.TaggingRequest{Text: &text, MaxTags: maxTags}
		if *title != "" {
			req.Title = title
		}
		if *existing != "" {
			req.ExistingTags = strings.Split(*existing, ",")
		}
		var report types.TagReport
		if err := post(client, base+"/generate-tags", req, &report); err != nil {
			log.Fatalf("Tag generation failed: %v", err)
		}
		printTags(os.Stdout, report)
	case "sentiment":
		req := types.AnalysisRequest{Text: &text}
		if *title != "" {
			req.Title = title
		}
		var report types.SentimentReport
		if err := post(client, base+"/analyze/sentiment", req, &report); err != nil {
			log.Fatalf("Sentiment analysis failed: %v", err)
		}
		printSentiment(os.Stdout, report)
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}
}

func readText(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func post(client *http.Client, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("service returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printTags(w io.Writer, report types.TagReport) {
	isNew := make(map[string]bool, len(report.NewTags))
	for _, tag := range report.NewTags {
		isNew[tag.Tag] = true
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tag", "Type", "Entity", "Relevance", "New"})
	for _, tag := range report.SuggestedTags {
		table.Append([]string{
			tag.Tag,
			string(tag.Type),
			tag.EntityType,
			strconv.FormatFloat(tag.Relevance, 'f', 2, 64),
			strconv.FormatBool(isNew[tag.Tag]),
		})
	}
	table.SetFooter([]string{"", "", "", "Total", strconv.Itoa(report.TagCount)})
	table.Render()
}

func printSentiment(w io.Writer, report types.SentimentReport) {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Metric", "Value"})
	summary.AppendBulk([][]string{
		{"Tone", report.EmotionalTone},
		{"Intensity", f(report.EmotionalIntensity)},
		{"Compound", f(report.Overall.Compound)},
		{"Positive / Negative / Neutral", f(report.Overall.Positive) + " / " + f(report.Overall.Negative) + " / " + f(report.Overall.Neutral)},
		{"Polarity", f(report.Overall.Polarity)},
		{"Subjectivity", f(report.Overall.Subjectivity)},
		{"Objectivity", f(report.ObjectivityScore)},
	})
	if report.TitleSentiment != nil {
		summary.Append([]string{"Title compound", f(report.TitleSentiment.Compound)})
	}
	summary.Render()

	if len(report.SentenceAnalysis) == 0 {
		return
	}
	sentences := tablewriter.NewWriter(w)
	sentences.SetHeader([]string{"Sentence", "Compound", "Polarity", "Subjectivity"})
	sentences.SetColWidth(60)
	for _, s := range report.SentenceAnalysis {
		sentences.Append([]string{s.Text, f(s.Compound), f(s.Polarity), f(s.Subjectivity)})
	}
	sentences.Render()
}
