package corpus

// Built-in demo corpus. Production deployments point corpus_file at a
// YAML file with the same shape instead.

var defaultEntries = []Entry{
	{
		Topic: "artificial intelligence",
		Source: SourceMeta{
			ID:        "src_001",
			Title:     "Introduction to Artificial Intelligence and Machine Learning",
			URL:       "https://example-university.edu/ai-ml-intro",
			Author:    "Dr. Jane Smith",
			Domain:    "example-university.edu",
			Type:      "academic",
			Published: "2023-06-15",
		},
		Phrases: []string{
			"artificial intelligence and machine learning have revolutionized",
			"machine learning algorithms",
			"artificial intelligence systems",
			"deep learning networks",
			"neural networks and artificial intelligence",
		},
	},
	{
		Topic: "climate change",
		Source: SourceMeta{
			ID:        "src_002",
			Title:     "Climate Change and Environmental Impact",
			URL:       "https://climate-research.org/environmental-study",
			Author:    "Dr. Michael Johnson",
			Domain:    "climate-research.org",
			Type:      "academic",
			Published: "2023-08-20",
		},
		Phrases: []string{
			"climate change represents one of the most pressing challenges",
			"global warming and climate change",
			"rising temperatures and melting ice caps",
			"environmental impact of climate change",
		},
	},
	{
		Topic: "human brain",
		Source: SourceMeta{
			ID:        "src_003",
			Title:     "Neuroscience and Brain Function Research",
			URL:       "https://neuro-institute.edu/brain-research",
			Author:    "Dr. Sarah Wilson",
			Domain:    "neuro-institute.edu",
			Type:      "academic",
			Published: "2023-04-10",
		},
		Phrases: []string{
			"human brain contains approximately 86 billion neurons",
			"neurons connected through synapses",
			"brain neural networks",
			"cognitive neuroscience research",
		},
	},
	{
		Topic: "machine learning",
		Source: SourceMeta{
			ID:        "src_004",
			Title:     "Advanced Machine Learning Techniques",
			URL:       "https://tech-university.edu/ml-advanced",
			Author:    "Prof. David Chen",
			Domain:    "tech-university.edu",
			Type:      "academic",
			Published: "2023-09-12",
		},
		Phrases: []string{
			"machine learning enables computers to learn from experience",
			"supervised and unsupervised learning",
			"machine learning algorithms and data processing",
			"predictive modeling with machine learning",
		},
	},
}

var defaultCommonPhrases = []string{
	"research shows that",
	"studies have shown",
	"according to research",
	"it is important to note",
	"in conclusion",
}

// Default returns a matcher over the built-in corpus
func Default() *Matcher {
	m, err := NewMatcher(defaultEntries, defaultCommonPhrases)
	if err != nil {
		// The built-in corpus is validated by tests; this cannot happen
		// at runtime with an unmodified binary.
		panic(err)
	}
	return m
}
