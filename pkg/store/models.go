package store

// ParsedFile is one ledger entry: a file name recorded as ingested.
// The unique index gives the ledger set semantics, so a repeated
// Record for the same name can never produce duplicates.
type ParsedFile struct {
	FileName string `gorm:"column:file_name;type:varchar(300);uniqueIndex"`
}

// TableName pins the ledger table name.
func (ParsedFile) TableName() string { return "parsed_files" }
