package store

// Schema holds the schedule sheet mirror. Data row index is the offset of a
// row in position order, the same addressing the spreadsheet uses.
const Schema = `
CREATE TABLE IF NOT EXISTS schedule_rows (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	cells TEXT NOT NULL,  -- JSON array
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
