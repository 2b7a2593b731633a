package posts

// News is an official announcement, usually a generated results report.
type News struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Blog is a member-authored post.
type Blog struct {
	ID         string `gorm:"primaryKey" json:"id"`
	CreatedAt  string `json:"created_at"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
	AuthorID   string `json:"author_id"`
	Image      string `json:"image"`
}
