package domain

// Benefit is a titled selling point of a product.
type Benefit struct {
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
}

// Product is a catalog entry.
type Product struct {
	ID          string    `toml:"id" json:"id"`
	Name        string    `toml:"name" json:"name"`
	Description string    `toml:"description" json:"description"`
	Category    string    `toml:"category" json:"category"`
	Features    []string  `toml:"features" json:"features"`
	Benefits    []Benefit `toml:"benefits" json:"benefits"`
	UseCases    []string  `toml:"use_cases" json:"use_cases"`
}

// StaticPage is a fixed site page contributed to the corpus.
type StaticPage struct {
	ID          string `toml:"id" json:"id"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	Content     string `toml:"content" json:"content"`
	URL         string `toml:"url" json:"url"`
}
