package catalog

// File represents the top-level structure of a catalog YAML file
type File struct {
	Articles []ArticleEntry `yaml:"articles"`
	Search   ArticleEntry   `yaml:"search"`
}

// ArticleEntry is a single article as written in the catalog
type ArticleEntry struct {
	Source      SourceEntry `yaml:"source"`
	Author      string      `yaml:"author,omitempty"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description,omitempty"`
	URL         string      `yaml:"url"`
	Image       string      `yaml:"image,omitempty"`
	Content     string      `yaml:"content,omitempty"`
	PublishedAt string      `yaml:"published_at,omitempty"` // RFC3339
	Age         string      `yaml:"age,omitempty"`          // Go duration, relative to load time
	Categories  []string    `yaml:"categories,omitempty"`
}

// SourceEntry identifies the publisher of an entry
type SourceEntry struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
}
