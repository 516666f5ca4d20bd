// ABOUTME: Parser turns raw transcript text into a course with lesson sections
// ABOUTME: Expects three header lines (title, link, instructor) then lesson markers
package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/harper/courserag/internal/models"
)

// lessonMarker matches lines of the form "Lesson 4: Title of the lesson"
var lessonMarker = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)

// lessonLink matches an optional "Lesson Link: <url>" line after a marker
var lessonLink = regexp.MustCompile(`^Lesson Link:\s*(\S+)\s*$`)

// Document is a parsed transcript: course metadata plus the text of each
// lesson section. A section with a nil lesson number holds preamble text
// that precedes the first lesson marker.
type Document struct {
	Course   models.Course
	Sections []Section
}

// Section is the body text belonging to one lesson (or the preamble)
type Section struct {
	LessonNumber *int
	Text         string
}

// Parse extracts course metadata and lesson sections from raw transcript
// text. The first three lines carry the course title, link, and instructor;
// a "Course Title:"-style prefix on a header line is stripped when present.
func Parse(rawText, sourceName string) (*Document, error) {
	lines := strings.Split(rawText, "\n")
	if len(lines) < 1 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("document %q is missing a course title on line 1", sourceName)
	}

	title := stripHeaderPrefix(lines[0], "Course Title:")
	var link, instructor string
	if len(lines) > 1 {
		link = stripHeaderPrefix(lines[1], "Course Link:")
	}
	if len(lines) > 2 {
		instructor = stripHeaderPrefix(lines[2], "Course Instructor:")
	}

	course, err := models.NewCourse(title, link, instructor)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", sourceName, err)
	}

	doc := &Document{Course: *course}

	var current *Section
	body := lines
	if len(lines) > 3 {
		body = lines[3:]
	} else {
		body = nil
	}

	for i := 0; i < len(body); i++ {
		line := body[i]

		if m := lessonMarker.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			number, err := strconv.Atoi(m[1])
			if err != nil || number < 0 {
				// Not a usable marker, treat as ordinary text
				appendLine(&doc.Sections, &current, nil, line)
				continue
			}

			lesson := models.Lesson{Number: number, Title: strings.TrimSpace(m[2])}

			// Optional "Lesson Link:" line directly after the marker
			if i+1 < len(body) {
				if lm := lessonLink.FindStringSubmatch(strings.TrimSpace(body[i+1])); lm != nil {
					lesson.Link = lm[1]
					i++
				}
			}

			if doc.Course.Lesson(number) == nil {
				doc.Course.Lessons = append(doc.Course.Lessons, lesson)
			}

			n := number
			doc.Sections = append(doc.Sections, Section{LessonNumber: &n})
			current = &doc.Sections[len(doc.Sections)-1]
			continue
		}

		appendLine(&doc.Sections, &current, nil, line)
	}

	// Drop sections that carry no text at all
	kept := doc.Sections[:0]
	for _, s := range doc.Sections {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text != "" {
			kept = append(kept, s)
		}
	}
	doc.Sections = kept

	return doc, nil
}

// appendLine adds a body line to the current section, opening the preamble
// section when no lesson marker has been seen yet
func appendLine(sections *[]Section, current **Section, lessonNumber *int, line string) {
	if *current == nil {
		if strings.TrimSpace(line) == "" {
			return
		}
		*sections = append(*sections, Section{LessonNumber: lessonNumber})
		*current = &(*sections)[len(*sections)-1]
	}
	if (*current).Text == "" {
		(*current).Text = line
	} else {
		(*current).Text += "\n" + line
	}
}

// stripHeaderPrefix trims an optional labeled prefix from a header line
func stripHeaderPrefix(line, prefix string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(line, prefix))
	}
	return line
}
