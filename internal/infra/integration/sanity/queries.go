package sanity

const postPreviewProjection = `{
  _id,
  title,
  slug,
  author->{name, slug},
  categories[]->{_id, title, slug},
  publishedAt,
  "excerpt": array::join(string::split((pt::text(body))[0..255], "")[0..255], "") + "..."
}`

const (
	siteSettingsQuery = `*[_type == "siteSettings"][0]{title, description, contactInfo}`

	pricingPlansQuery = `*[_type == "pricing" && isActive == true] | order(order asc){
  _id, name, description, price, isPopular, isActive, order, ctaText, ctaUrl, features, specifications
}`

	faqQuery = `*[_type == "faq" && isActive == true] | order(order asc){_id, question, answer, category, order}`

	faqByCategoryQuery = `*[_type == "faq" && isActive == true && category == $category] | order(order asc){_id, question, answer, category, order}`

	testimonialsQuery = `*[_type == "testimonial" && isActive == true] | order(_createdAt desc){_id, name, location, content, rating, isFeatured}`

	featuredTestimonialsQuery = `*[_type == "testimonial" && isActive == true && isFeatured == true] | order(_createdAt desc){_id, name, location, content, rating, isFeatured}`

	recentPostsQuery = `*[_type == "post"] | order(publishedAt desc) [0...$limit] ` + postPreviewProjection

	postsPaginatedQuery = `{
  "posts": *[_type == "post"] | order(publishedAt desc) [$start...$end] ` + postPreviewProjection + `,
  "total": count(*[_type == "post"])
}`

	postBySlugQuery = `*[_type == "post" && slug.current == $slug][0]{
  _id, title, slug, author->{name, slug}, categories[]->{_id, title, slug}, publishedAt, body
}`

	newsletterByEmailQuery = `*[_type == "newsletter" && email == $email][0]{_id, email, source, isActive, subscribedAt}`
)
