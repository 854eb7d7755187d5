package summarize

import "fmt"

func summaryPrompt(text string) string {
	return fmt.Sprintf(`You are a scientific paper analysis assistant. Your task is to provide a comprehensive but concise summary of the following research paper. The summary should include:

1. Title, Authors, and Publication details
2. Research Questions/Objectives
3. Methodology used
4. Key Findings and Results
5. Main Conclusions and Implications
6. Limitations mentioned in the paper

Format the summary with appropriate Markdown headings for each section.
Be concise but thorough, and avoid unnecessary text.

Here is the paper content:

%s
`, text)
}

func insightsPrompt(text string) string {
	return fmt.Sprintf(`You are a research analyst specializing in identifying key insights from academic papers.
Review the following paper content and extract the most important theoretical and practical insights.
Focus especially on novel contributions, surprising findings, and implications for future research and practice.

For your analysis, please include:
1. The main novel contributions of this paper
2. Key insights that contradict or extend previous research
3. Practical applications of the research findings
4. Future research directions suggested by the results
5. Methodological innovations, if any

Paper content:

%s
`, text)
}

func tagsPrompt(title, abstract string) string {
	return fmt.Sprintf(`Generate 3-5 concise, relevant tags for this research paper.
Return the tags as a simple comma-separated list without any additional text.

Paper Title: %s

Paper Abstract: %s
`, title, abstract)
}

func metadataPrompt(firstPage string) string {
	return fmt.Sprintf(`You are a metadata extraction tool for research papers.
Analyze the following text (likely from the first page of a scientific paper) and extract these metadata elements:
- title: The full title of the paper
- authors: The full author list, correctly formatted
- publication: Journal/conference name or other publication venue
- date: Publication date/year
- abstract: The paper's abstract if present

Return ONLY a JSON object with these fields. Do not include any explanatory text or other formatting.

Here's the text to analyze:

%s
`, firstPage)
}
