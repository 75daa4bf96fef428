// ABOUTME: SQLite database schema for triage memory storage
// ABOUTME: Creates all tables and indexes for decisions, context, patterns, templates
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Email processing history (one row per classified email)
CREATE TABLE IF NOT EXISTS email_history (
    email_id TEXT PRIMARY KEY,
    author TEXT NOT NULL,
    subject TEXT,
    classification TEXT NOT NULL,
    reasoning TEXT,
    thread_summary TEXT,
    timestamp DATETIME NOT NULL,
    response_sent BOOLEAN DEFAULT FALSE,
    raw_content TEXT
);

-- User preferences and dynamic context
CREATE TABLE IF NOT EXISTS user_context (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    category TEXT DEFAULT 'general',
    updated_at DATETIME NOT NULL
);

-- Learned patterns from email interactions
CREATE TABLE IF NOT EXISTS conversation_patterns (
    pattern_id INTEGER PRIMARY KEY AUTOINCREMENT,
    author_domain TEXT NOT NULL,
    typical_classification TEXT NOT NULL,
    keywords TEXT, -- JSON array of keywords
    frequency INTEGER DEFAULT 1,
    last_seen DATETIME NOT NULL,
    UNIQUE(author_domain, typical_classification)
);

-- Response templates and drafts
CREATE TABLE IF NOT EXISTS response_templates (
    template_id INTEGER PRIMARY KEY AUTOINCREMENT,
    template_name TEXT UNIQUE NOT NULL,
    template_content TEXT NOT NULL,
    use_count INTEGER DEFAULT 0,
    category TEXT DEFAULT 'general',
    created_at DATETIME NOT NULL,
    last_used DATETIME
);

-- Indexes for the query paths over email history
CREATE INDEX IF NOT EXISTS idx_email_author ON email_history(author);
CREATE INDEX IF NOT EXISTS idx_email_timestamp ON email_history(timestamp);
CREATE INDEX IF NOT EXISTS idx_email_classification ON email_history(classification);
CREATE INDEX IF NOT EXISTS idx_pattern_domain ON conversation_patterns(author_domain);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
