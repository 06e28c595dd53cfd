package domain

import "time"

// Article is a single news item returned by the discovery service.
// Created only by the search stage; later stages never mutate it.
type Article struct {
	Title       string
	URL         string
	Content     string
	Score       float64
	PublishedAt time.Time
}

// Summary is the audience-facing digest of one article. Title and URL are
// copied verbatim from the originating article so identity is preserved.
type Summary struct {
	Title   string
	URL     string
	Summary string
}

// ReportRun captures one published report for archiving.
type ReportRun struct {
	Date         time.Time
	Report       string
	ArticleCount int
	Path         string
	CreatedAt    time.Time
}
