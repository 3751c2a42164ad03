package entity

import "time"

type ContactInfo struct {
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Address     string            `json:"address,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
}

type SiteSettings struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	ContactInfo *ContactInfo `json:"contactInfo,omitempty"`
}

// ContactPhone retorna o telefone comercial configurado, ou "" se não houver.
func (s *SiteSettings) ContactPhone() string {
	if s == nil || s.ContactInfo == nil {
		return ""
	}
	return s.ContactInfo.Phone
}

type FAQ struct {
	ID       string `json:"_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
	Order    int    `json:"order"`
}

type Testimonial struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Location   string `json:"location,omitempty"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	IsFeatured bool   `json:"isFeatured"`
}

type Slug struct {
	Current string `json:"current"`
}

type PostAuthor struct {
	Name string `json:"name"`
	Slug Slug   `json:"slug"`
}

type PostCategory struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  Slug   `json:"slug"`
}

type PostPreview struct {
	ID          string         `json:"_id"`
	Title       string         `json:"title"`
	Slug        Slug           `json:"slug"`
	Author      *PostAuthor    `json:"author,omitempty"`
	Categories  []PostCategory `json:"categories,omitempty"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	Excerpt     string         `json:"excerpt,omitempty"`
}

type Post struct {
	PostPreview
	Body []map[string]any `json:"body,omitempty"`
}

type PostPage struct {
	Posts      []PostPreview `json:"posts"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

// Home agrega tudo que a landing page renderiza.
type Home struct {
	SiteSettings *SiteSettings `json:"siteSettings"`
	Pricing      []PricingPlan `json:"pricing"`
	FAQ          []FAQ         `json:"faq"`
	Testimonials []Testimonial `json:"testimonials"`
	RecentPosts  []PostPreview `json:"recentPosts"`
}

type NewsletterSubscriber struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	Source       string    `json:"source"`
	IsActive     bool      `json:"isActive"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
