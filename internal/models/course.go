// ABOUTME: Course and Lesson represent an ingested course transcript
// ABOUTME: Course title is the primary key, lessons are owned by their course
package models

import (
	"errors"
	"strings"
)

// Course represents one ingested course transcript.
// The title acts as the unique identifier; courses are immutable once indexed.
type Course struct {
	Title      string   `json:"title"`
	Link       string   `json:"link,omitempty"`
	Instructor string   `json:"instructor,omitempty"`
	Lessons    []Lesson `json:"lessons"`
}

// Lesson is a numbered section within a course. Numbers are unique within
// a course but not necessarily contiguous.
type Lesson struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
}

// NewCourse creates a Course with validation
func NewCourse(title, link, instructor string) (*Course, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("course title cannot be empty")
	}
	return &Course{
		Title:      strings.TrimSpace(title),
		Link:       strings.TrimSpace(link),
		Instructor: strings.TrimSpace(instructor),
	}, nil
}

// Lesson returns the lesson with the given number, or nil if absent
func (c *Course) Lesson(number int) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].Number == number {
			return &c.Lessons[i]
		}
	}
	return nil
}
