package generation

import (
	"fmt"
	"strings"

	"github.com/Shalin-Shah-2002/Artium/pkg/articles"
)

const articlePromptFormat = `You are an expert Medium article writer known for producing long-form, insightful, and well-structured content. Write a complete, polished Medium-style article using the following specifications:

Title: %s
Tone: %s
Audience: General readers%s
%s
%s

Your response MUST be structured strictly as a JSON object in this exact format:
{
  "title": "Refined, SEO-friendly version of the given title",
  "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"],
  "sections": [
    {"id": "intro", "heading": "Introduction", "content": "Engaging 3-5 paragraphs (200-350 words) introducing the topic with a strong hook, context, and reader motivation.", "order": 1},
    {"id": "section-1", "heading": "First Main Point", "content": "3-5 well-developed paragraphs (250-400 words) explaining the first major theme with clear examples and insights.", "order": 2},
    {"id": "section-2", "heading": "Second Main Point", "content": "3-5 paragraphs (250-400 words) offering deeper exploration, comparisons, or practical explanations.", "order": 3},
    {"id": "section-3", "heading": "Additional Insight", "content": "3-5 paragraphs (250-400 words) adding another analytical dimension, case study, or real-world scenario if relevant.", "order": 4},
    {"id": "section-4", "heading": "Fourth Insight", "content": "3-5 paragraphs (250-400 words) extending the article with expert guidance, actionable advice, or advanced concepts.", "order": 5},
    {"id": "conclusion", "heading": "Conclusion", "content": "2-4 paragraphs (150-250 words) summarizing the article, reinforcing key lessons, and ending with a compelling takeaway.", "order": 6}
  ]
}

Requirements:
- Final article length must be 1,500-2,500+ words.
- Maintain a professional yet conversational Medium writing tone.
- Use short, readable paragraphs.
- Include storytelling, examples, analogies, and practical insights.
- Ensure smooth transitions between sections.
- This article will be copied directly into Medium. Format every section's "content" field using Medium-ready Markdown: keep paragraphs separated by a blank line, use bullet or numbered lists where helpful, highlight important phrases with **bold** or _italic_, and avoid leading/trailing whitespace.
- Ensure each paragraph within "content" ends with two newline characters ("\n\n"). For lists, use Markdown syntax ("- item" or "1. item") with one item per line so Medium renders bullets correctly.
- Do NOT add Markdown heading markers inside the "content" field—the "heading" value will be rendered as the Medium heading for that section.
- Output ONLY valid JSON—no markdown code fences, no explanations, no additional commentary.
`

func buildArticlePrompt(req GenerateRequest) string {
	tone := "neutral and informative"
	if req.Tone != nil && *req.Tone != "" {
		tone = *req.Tone
	}

	audience := ""
	if req.Audience != nil && *req.Audience != "" {
		audience = " for " + *req.Audience
	}

	topics := ""
	if len(req.Topics) > 0 {
		var list strings.Builder
		for _, topic := range req.Topics {
			fmt.Fprintf(&list, "- %s\n", topic)
		}
		topics = "\n\nKey topics to cover:\n" + strings.TrimRight(list.String(), "\n")
	}

	narrative := ""
	if req.AdditionalPrompt != nil && strings.TrimSpace(*req.AdditionalPrompt) != "" {
		narrative = "\n\nAdditional narrative guidance from the author (use this to shape the storytelling voice, structure, and details):\n" +
			strings.TrimSpace(*req.AdditionalPrompt) + "\n"
	}

	return fmt.Sprintf(articlePromptFormat, req.Title, tone, audience, topics, narrative)
}

const sectionPromptFormat = `Rewrite this article section with improvements:

Article Title: %s
Section Heading: %s
Current Content: %s

Tone: %s
%s
Rewrite this section to be more engaging and informative. Return ONLY the new content text, no JSON, no markdown code blocks, just the paragraph text.`

func buildSectionPrompt(article ArticleInput, section articles.Section, overrides *PromptOverrides) string {
	tone := "neutral"
	if article.Tone != nil && *article.Tone != "" {
		tone = *article.Tone
	}
	focus := ""
	if overrides != nil {
		if overrides.Tone != nil && *overrides.Tone != "" {
			tone = *overrides.Tone
		}
		if overrides.Focus != nil && *overrides.Focus != "" {
			focus = "\nSpecial focus: " + *overrides.Focus + "\n"
		}
	}

	return fmt.Sprintf(sectionPromptFormat, article.Title, section.Heading, section.Content, tone, focus)
}
