package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/reit"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics checks that docs/readme.md lists exactly the topic files, and
// that each can be loaded.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(all, listed) {
		t.Errorf("topics = %v, readme.md lists %v", all, listed)
	}

	if _, err := GetTopic("nope"); err == nil {
		t.Errorf("GetTopic() of an unknown topic should fail")
	}
	everything, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !strings.Contains(everything, MustTopic(topic)) {
			t.Errorf("GetTopic(*) misses %q", topic)
		}
	}
}

// TestOrderExamples replays the json examples of each topic, in order, to
// keep them in sync with the order format.
func TestOrderExamples(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			examples := jsonBlocks(content)
			if len(examples) == 0 {
				return
			}
			orders, err := reit.DecodeOrders(strings.NewReader(strings.Join(examples, "")))
			if err != nil {
				t.Fatalf("%s: %v", file, err)
			}
			if err := reit.NewMarket(reit.NewChain()).Replay(orders); err != nil {
				t.Errorf("%s: %v", file, err)
			}
		})
	}
}

// jsonBlocks returns the content of the fenced json blocks of a markdown
// document.
func jsonBlocks(content []byte) []string {
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	var blocks []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || string(fcb.Language(content)) != "json" {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, b.String())
		return ast.WalkContinue, nil
	})
	return blocks
}
