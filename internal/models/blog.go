package models

// Blog post categories.
const (
	BlogNews                = "news"
	BlogMarketInsights      = "market-insights"
	BlogConstructionUpdates = "construction-updates"
	BlogCompanyNews         = "company-news"
)

type BlogPost struct {
	ID            string   `json:"id" example:"monsoon-construction-tips"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	PublishDate   string   `json:"publishDate" example:"2025-04-18"`
	Category      string   `json:"category" example:"market-insights"`
	FeaturedImage string   `json:"featuredImage,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	ReadTime      int      `json:"readTime"` // minutes
}
