package storydb

import "errors"

var (
	// ErrStoryNotFound is returned when no story matches the lookup.
	ErrStoryNotFound = errors.New("story not found")
	// ErrNotAuthor is returned when a mutation comes from someone other than
	// the story's author.
	ErrNotAuthor = errors.New("user is not the story author")
)
