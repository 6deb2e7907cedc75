package sqlite

// schema is the library snapshot schema, applied idempotently on Open.
const schema = `
CREATE TABLE IF NOT EXISTS libraries (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
	id            INTEGER PRIMARY KEY,
	library_id    INTEGER NOT NULL REFERENCES libraries(id),
	regular       INTEGER NOT NULL DEFAULT 1,
	title         TEXT NOT NULL DEFAULT '',
	short_title   TEXT NOT NULL DEFAULT '',
	citation_key  TEXT NOT NULL DEFAULT '',
	doi           TEXT NOT NULL DEFAULT '',
	date          TEXT NOT NULL DEFAULT '',
	publication   TEXT NOT NULL DEFAULT '',
	conference    TEXT NOT NULL DEFAULT '',
	proceedings   TEXT NOT NULL DEFAULT '',
	first_creator TEXT NOT NULL DEFAULT '',
	modified      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_documents_library ON documents(library_id);

CREATE TABLE IF NOT EXISTS creators (
	document_id INTEGER NOT NULL REFERENCES documents(id),
	position    INTEGER NOT NULL,
	first_name  TEXT NOT NULL DEFAULT '',
	last_name   TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (document_id, position)
);

CREATE TABLE IF NOT EXISTS attachments (
	id           INTEGER PRIMARY KEY,
	document_id  INTEGER NOT NULL REFERENCES documents(id),
	content_type TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL DEFAULT '',
	filename     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_attachments_document ON attachments(document_id);

CREATE TABLE IF NOT EXISTS folders (
	id         INTEGER PRIMARY KEY,
	library_id INTEGER NOT NULL REFERENCES libraries(id),
	parent_id  INTEGER NOT NULL DEFAULT 0,
	name       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_folders_library ON folders(library_id);

CREATE TABLE IF NOT EXISTS folder_documents (
	folder_id   INTEGER NOT NULL REFERENCES folders(id),
	document_id INTEGER NOT NULL REFERENCES documents(id),
	PRIMARY KEY (folder_id, document_id)
);
`
