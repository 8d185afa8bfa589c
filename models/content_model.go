package models

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Content types, as used in routes, upload folders and activity events.
const (
	ContentNews     = "news"
	ContentPodcast  = "podcasts"
	ContentExercise = "exercises"
	ContentGallery  = "galleries"
	ContentPedagogy = "pedagogies"
	ContentResource = "resources"
)
