// ABOUTME: SQLite database schema for the dual course index
// ABOUTME: One catalog table for courses, one content table for chunks
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Catalog collection: one row per course, keyed by title
CREATE TABLE IF NOT EXISTS courses (
    title TEXT PRIMARY KEY,
    link TEXT,
    instructor TEXT,
    lessons TEXT NOT NULL DEFAULT '[]',
    title_vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Content collection: one row per chunk with its embedding
CREATE TABLE IF NOT EXISTS chunks (
    course_title TEXT NOT NULL,
    chunk_index INTEGER NOT NULL,
    lesson_number INTEGER,
    content TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (course_title, chunk_index)
);

-- Indexes for filtered content search
CREATE INDEX IF NOT EXISTS idx_chunks_course ON chunks(course_title);
CREATE INDEX IF NOT EXISTS idx_chunks_lesson ON chunks(course_title, lesson_number);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
