package processor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	metaColor = "555555"

	transcriptParagraphChars = 600
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumberd = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// resultToDocx writes the envelope as a styled report: summary first, then
// the frame captions and the full transcript.
func resultToDocx(title string, res pipeline.Result, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	addMeta(doc.AddParagraph(""), res)

	addStyledRun(doc.AddParagraph(""), "Summary", true, 15)
	addMarkdown(doc, res.Summary)

	if len(res.Captions) > 0 {
		addStyledRun(doc.AddParagraph(""), "Visual captions", true, 15)
		for i, caption := range res.Captions {
			label := fmt.Sprintf("Frame %d", i+1)
			if i < len(res.Frames) {
				label = fmt.Sprintf("%s (%.1fs)", label, res.Frames[i].TimestampSeconds)
			}
			p := doc.AddParagraph("")
			p.AddText(label + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
			p.AddText(caption).Font(fontName).Size(fontSize).Color("000000")
		}
	}

	addStyledRun(doc.AddParagraph(""), "Transcript", true, 15)
	if res.Transcript == "" {
		doc.AddParagraph("").AddText("(no speech detected)").Font(fontName).Size(fontSize).Color(metaColor)
	}
	for _, para := range splitParagraphs(res.Transcript, transcriptParagraphChars) {
		doc.AddParagraph("").AddText(para).Font(fontName).Size(fontSize).Color("000000")
	}

	if len(res.Warnings) > 0 {
		addStyledRun(doc.AddParagraph(""), "Warnings", true, 14)
		for _, w := range res.Warnings {
			doc.AddParagraph("").AddText("• " + w).Font(fontName).Size(fontSize).Color(metaColor)
		}
	}

	return doc.SaveTo(outputPath)
}

func addMeta(p *docx.Paragraph, res pipeline.Result) {
	v := res.Video
	meta := fmt.Sprintf("Duration %.1fs · %dx%d · %.2f fps", v.DurationSeconds, v.Width, v.Height, v.FPS)
	if res.Language != "" {
		meta += " · " + res.Language
	}
	meta += " · request " + res.RequestID
	p.AddText(meta).Font(fontName).Size(11).Color(metaColor)
}

// addMarkdown renders the subset of markdown LLMs tend to produce.
func addMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if reNumberd.MatchString(trimmed) {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

// splitParagraphs groups sentences into paragraphs of roughly max characters.
func splitParagraphs(text string, max int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var (
		out     []string
		current strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
		if current.Len() >= max && endsSentence(word) {
			out = append(out, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "?") || strings.HasSuffix(word, "!")
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
