// Package console implements the interactive terminal front end: it loads a
// document directory, prints index statistics and the B-tree layout, then
// answers single-term queries read line by line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/go-text-indexer/internal/btree"
	"github.com/gcbaptista/go-text-indexer/internal/loader"
	"github.com/gcbaptista/go-text-indexer/internal/search"
	"github.com/gcbaptista/go-text-indexer/services"
)

const (
	sectionWidth   = 78
	separatorWidth = 40
	maxDocsColumn  = 30
	maxSuggestions = 3
	prompt         = "Search > "
)

var exitCommands = map[string]bool{"exit": true, "quit": true, "q": true}

// Options configures a Console.
type Options struct {
	DocumentsDir string
	Extensions   []string
	TopTerms     int
	NoColor      bool
}

// Console drives one interactive session against an engine.
type Console struct {
	engine services.Engine
	in     io.Reader
	out    *errWriter
	styles Styles
	opts   Options
}

// New creates a console reading commands from in and writing to out.
func New(engine services.Engine, in io.Reader, out io.Writer, opts Options) *Console {
	if opts.TopTerms <= 0 {
		opts.TopTerms = 10
	}
	return &Console{
		engine: engine,
		in:     in,
		out:    &errWriter{w: out},
		styles: GetStyles(opts.NoColor),
		opts:   opts,
	}
}

// Run executes the full session: load, report, then the search loop. It
// returns when the input is exhausted, an exit command is read or ctx is
// cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.Banner()

	c.Section("INITIALIZING SYSTEM")
	if err := c.Load(ctx); err != nil {
		c.errorLine("Loading failed: %v", err)
		return err
	}

	c.Section("SYSTEM STATISTICS")
	c.Stats()

	c.Section(fmt.Sprintf("INVERTED INDEX PREVIEW (Top %d by Freq)", c.opts.TopTerms))
	c.Preview()

	c.Section("B-TREE STRUCTURE")
	c.Tree()

	if err := c.Loop(ctx); err != nil {
		return err
	}
	return c.out.err
}

// Banner prints the framed title.
func (c *Console) Banner() {
	title := "NEON TEXT INDEXER\nInverted Index & B-Tree Visualization"
	c.out.printf("\n%s\n", c.styles.Banner.Render(title))
}

// Section prints a titled rule.
func (c *Console) Section(title string) {
	rule := strings.Repeat("-", max(3, sectionWidth-3-utf8.RuneCountInString(title)))
	c.out.printf("\n%s %s\n", c.styles.Section.Render(">> "+title), c.styles.Accent.Render(rule))
}

// Load indexes the configured directory and lists every indexed file.
func (c *Console) Load(ctx context.Context) error {
	c.out.printf("%s\n", c.styles.Dim.Render("Loading files from: "+c.opts.DocumentsDir+"/"))

	result, err := loader.LoadDirectory(ctx, c.opts.DocumentsDir, loader.Options{Extensions: c.opts.Extensions}, c.engine)
	if err != nil {
		return err
	}
	for _, name := range result.Skipped {
		c.errorLine("Skipped %s (not valid UTF-8)", name)
	}
	if len(result.Documents) == 0 {
		c.errorLine("No documents found in '%s'.", c.opts.DocumentsDir)
		return nil
	}
	for _, doc := range result.Documents {
		c.out.printf(" %s %s %s\n",
			c.styles.Accent.Render("→"),
			c.styles.Value.Render(fmt.Sprintf("Indexed: %-20s", doc.ID)),
			c.styles.Dim.Render(fmt.Sprintf("(%d chars)", doc.Chars())),
		)
	}
	c.out.printf("%s %s\n",
		c.styles.Accent.Render("[+]"),
		c.styles.Success.Render(fmt.Sprintf("Successfully processed %d documents in %.4fs", len(result.Documents), result.Elapsed.Seconds())),
	)
	return nil
}

// Stats prints the index summary.
func (c *Console) Stats() {
	stats := c.engine.Statistics()
	c.info("Total Documents", fmt.Sprintf("%d", stats.TotalDocuments))
	c.info("Unique Terms", fmt.Sprintf("%d", stats.TotalTerms))
	c.info("Total Token Count", fmt.Sprintf("%d", stats.TotalOccurrences))
	c.info("B-Tree Degree", fmt.Sprintf("%d", stats.BTreeDegree))
	c.info("B-Tree Height", fmt.Sprintf("%d", stats.BTreeHeight))
}

// Preview prints the most frequent terms.
func (c *Console) Preview() {
	c.out.printf("%s\n", c.styles.Accent.Render(fmt.Sprintf(" %-20s | %-8s | %s", "TERM", "FREQ", "DOCS")))
	c.out.printf("%s\n", c.styles.Accent.Render(strings.Repeat("-", 60)))
	for _, term := range c.engine.TopTerms(c.opts.TopTerms) {
		c.out.printf(" %s %s %s %s %s\n",
			c.styles.Key.Render(fmt.Sprintf("%-20s", term.Term)),
			c.styles.Accent.Render("|"),
			c.styles.Value.Render(fmt.Sprintf("%-8d", term.Count)),
			c.styles.Accent.Render("|"),
			c.styles.Dim.Render(truncate(strings.Join(term.Docs, ", "), maxDocsColumn)),
		)
	}
}

// Tree prints the B-tree, one node per line, children indented under their
// parent.
func (c *Console) Tree() {
	c.renderNode(c.engine.Tree(), 0)
}

func (c *Console) renderNode(node btree.NodeSnapshot, level int) {
	style := c.styles.Value
	switch {
	case node.Leaf:
		style = c.styles.Dim
	case level == 0:
		style = c.styles.Key
	}
	c.out.printf("%s%s %s\n",
		strings.Repeat(" ", level*4),
		c.styles.Accent.Render("└─"),
		style.Render("["+strings.Join(node.Keys, ", ")+"]"),
	)
	for _, child := range node.Children {
		c.renderNode(child, level+1)
	}
}

// Loop reads queries until EOF, an exit command or cancellation.
func (c *Console) Loop(ctx context.Context) error {
	c.Section("INTERACTIVE SEARCH CONSOLE")
	c.out.printf("%s\n\n", c.styles.Dim.Render("Type 'exit' to quit."))

	scanner := bufio.NewScanner(c.in)
	for {
		c.out.printf("%s", c.styles.Accent.Render(prompt))
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		query := search.NormalizeTerm(scanner.Text())
		if exitCommands[query] {
			c.out.printf("\n%s\n", c.styles.Accent.Render("Shutting down... Goodbye!"))
			return c.out.err
		}
		if query == "" {
			continue
		}
		c.Query(query)
	}
	c.out.printf("\n")
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return c.out.err
}

// Query prints the lookup status, total frequency, documents and a context
// snippet per document for one term.
func (c *Console) Query(term string) {
	result := c.engine.Search(term)
	separator := c.styles.Accent.Render(strings.Repeat("-", separatorWidth))

	c.out.printf("%s\n", separator)
	status := c.styles.Error.Render("NOT FOUND")
	if result.Found {
		status = c.styles.Success.Render("FOUND")
	}
	c.out.printf(" B-Tree Lookup: %s\n", status)
	if !result.Found {
		if suggestions := c.engine.Suggest(term, maxSuggestions); len(suggestions) > 0 {
			c.out.printf(" Did you mean:  %s\n", c.styles.Value.Render(strings.Join(suggestions, ", ")))
		}
	}

	if result.Found {
		docs := make([]string, 0, len(result.Results))
		for _, entry := range result.Results {
			docs = append(docs, entry.Document)
		}
		frequency := c.engine.TermFrequency(term)
		c.out.printf(" Frequency:     %s\n", c.styles.Value.Render(fmt.Sprintf("%d", frequency)))
		c.out.printf(" Documents:     %s\n", c.styles.Value.Render(strings.Join(docs, ", ")))

		c.out.printf("\n %s\n", c.styles.Accent.Render("[ Context Snippets ]"))
		for _, entry := range result.Results {
			c.out.printf(" %s %s %s\n",
				c.styles.Key.Render(fmt.Sprintf("%-15s", entry.Document)),
				c.styles.Accent.Render("│"),
				c.styles.Dim.Render(entry.Snippet),
			)
		}
	}
	c.out.printf("%s\n\n", separator)
}

func (c *Console) info(key, value string) {
	c.out.printf(" %s %s %s\n",
		c.styles.Accent.Render("•"),
		c.styles.Key.Render(fmt.Sprintf("%-25s :", key)),
		c.styles.Value.Render(value),
	)
}

func (c *Console) errorLine(format string, args ...any) {
	c.out.printf("%s\n", c.styles.Error.Render("[!] "+fmt.Sprintf(format, args...)))
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// errWriter keeps the first write error so rendering code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
